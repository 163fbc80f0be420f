package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const defaultConfigRelPath = "diffscope/config.yaml"

// Flag names shared between the flag set and config-file precedence.
const (
	FlagNameTheme      = "theme"
	FlagNameEncoding   = "encoding"
	FlagNameContext    = "context"
	FlagNameLineEnding = "eol"
	FlagNameAutoCRLF   = "autocrlf"
	FlagNameHexWidth   = "hex-width"
	FlagNameHexColumns = "hex-columns"
)

// AutoCRLF values mirror git's core.autocrlf policy.
const (
	AutoCRLFTrue  = "true"
	AutoCRLFInput = "input"
	AutoCRLFFalse = "false"
)

// File is the raw YAML shape. Pointer fields distinguish an absent key
// from a zero value so flags and defaults can fill the gaps.
type File struct {
	Theme          *string `yaml:"theme"`
	Encoding       *string `yaml:"encoding"`
	ContextLines   *int    `yaml:"context-lines"`
	LineEnding     *string `yaml:"line-ending"`
	AutoCRLF       *string `yaml:"autocrlf"`
	HexColumnWidth *int    `yaml:"hex-column-width"`
	HexColumnCount *int    `yaml:"hex-column-count"`
}

// Settings is the resolved configuration the viewer runs with.
type Settings struct {
	// Theme names the color theme.
	Theme string

	// Encoding is the IANA charset name used when building patches,
	// empty for UTF-8 passthrough.
	Encoding string

	// ContextLines is the context size requested from diff producers.
	ContextLines int

	// LineEnding names the normalization target: lf, crlf, or cr.
	LineEnding string

	// AutoCRLF is the checkout conversion policy: true, input, or false.
	AutoCRLF string

	// HexColumnWidth is bytes per column in the hex preview.
	HexColumnWidth int

	// HexColumnCount is columns per row in the hex preview.
	HexColumnCount int
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Theme:          "default",
		ContextLines:   3,
		LineEnding:     "lf",
		AutoCRLF:       AutoCRLFFalse,
		HexColumnWidth: 8,
		HexColumnCount: 2,
	}
}

// LineEndingValue maps a line-ending name to its byte sequence.
func LineEndingValue(name string) (string, bool) {
	switch name {
	case "lf":
		return "\n", true
	case "crlf":
		return "\r\n", true
	case "cr":
		return "\r", true
	}
	return "", false
}

type resolvedPath struct {
	Path     string
	Required bool
	Enabled  bool
}

func resolveConfigPath(configHome, explicitPath string, noConfig bool) resolvedPath {
	if noConfig {
		return resolvedPath{Enabled: false}
	}
	if explicitPath != "" {
		return resolvedPath{Path: explicitPath, Required: true, Enabled: true}
	}
	return resolvedPath{
		Path:    filepath.Join(configHome, defaultConfigRelPath),
		Enabled: true,
	}
}

// Load reads the config file. With an empty explicitPath the default XDG
// location is used and a missing file is not an error. noConfig skips the
// file entirely.
func Load(explicitPath string, noConfig bool) (File, error) {
	path := resolveConfigPath(xdg.ConfigHome, explicitPath, noConfig)
	if !path.Enabled {
		return File{}, nil
	}
	return readFile(path.Path, path.Required)
}

func readFile(path string, required bool) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return File{}, nil
		}
		return File{}, fmt.Errorf("read config %q: %w", path, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var cfg File
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("parse config %q: %w", path, err)
	}

	if err := validateFile(path, cfg); err != nil {
		return File{}, err
	}

	return cfg, nil
}

func validateFile(path string, cfg File) error {
	if cfg.LineEnding != nil {
		if _, ok := LineEndingValue(*cfg.LineEnding); !ok {
			return fmt.Errorf("invalid config value for key %q in %q: %q", FlagNameLineEnding, path, *cfg.LineEnding)
		}
	}
	if cfg.AutoCRLF != nil {
		switch *cfg.AutoCRLF {
		case AutoCRLFTrue, AutoCRLFInput, AutoCRLFFalse:
		default:
			return fmt.Errorf("invalid config value for key %q in %q: %q", FlagNameAutoCRLF, path, *cfg.AutoCRLF)
		}
	}
	if cfg.ContextLines != nil && *cfg.ContextLines < 0 {
		return fmt.Errorf("invalid config value for key %q in %q: %d", FlagNameContext, path, *cfg.ContextLines)
	}
	if cfg.HexColumnWidth != nil && *cfg.HexColumnWidth <= 0 {
		return fmt.Errorf("invalid config value for key %q in %q: %d", FlagNameHexWidth, path, *cfg.HexColumnWidth)
	}
	if cfg.HexColumnCount != nil && *cfg.HexColumnCount <= 0 {
		return fmt.Errorf("invalid config value for key %q in %q: %d", FlagNameHexColumns, path, *cfg.HexColumnCount)
	}
	return nil
}

// Apply layers file values over settings, skipping keys that were set
// explicitly on the command line.
func Apply(values Settings, cfg File, explicitlySet map[string]bool) Settings {
	if cfg.Theme != nil && !explicitlySet[FlagNameTheme] {
		values.Theme = *cfg.Theme
	}
	if cfg.Encoding != nil && !explicitlySet[FlagNameEncoding] {
		values.Encoding = *cfg.Encoding
	}
	if cfg.ContextLines != nil && !explicitlySet[FlagNameContext] {
		values.ContextLines = *cfg.ContextLines
	}
	if cfg.LineEnding != nil && !explicitlySet[FlagNameLineEnding] {
		values.LineEnding = *cfg.LineEnding
	}
	if cfg.AutoCRLF != nil && !explicitlySet[FlagNameAutoCRLF] {
		values.AutoCRLF = *cfg.AutoCRLF
	}
	if cfg.HexColumnWidth != nil && !explicitlySet[FlagNameHexWidth] {
		values.HexColumnWidth = *cfg.HexColumnWidth
	}
	if cfg.HexColumnCount != nil && !explicitlySet[FlagNameHexColumns] {
		values.HexColumnCount = *cfg.HexColumnCount
	}
	return values
}
