// Package config loads viewer settings from a YAML file under the XDG
// config home, with command-line flags taking precedence over file values.
// A missing file yields defaults; only an explicitly requested path is
// required to exist.
package config
