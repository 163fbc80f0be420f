package git

import (
	"fmt"
	"strconv"
	"strings"
)

// DiffOptions configures diff generation.
type DiffOptions struct {
	// Staged shows the diff of staged changes.
	Staged bool

	// From is the starting ref (commit, branch, etc.).
	From string

	// To is the ending ref.
	To string

	// Paths limits the diff to specific paths.
	Paths []string

	// Context is the number of context lines. Negative means git's default.
	Context int
}

// DiffRaw returns the raw unified diff text git produces for the options.
// This is the text the viewer displays and selections operate on.
func (r *Repository) DiffRaw(opts DiffOptions) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	args := []string{"diff", "-M"}

	if opts.Staged {
		args = append(args, "--cached")
	}
	if opts.Context >= 0 {
		args = append(args, fmt.Sprintf("-U%d", opts.Context))
	}
	if opts.From != "" {
		args = append(args, opts.From)
	}
	if opts.To != "" {
		args = append(args, opts.To)
	}
	if len(opts.Paths) > 0 {
		args = append(args, "--")
		args = append(args, opts.Paths...)
	}

	output, err := r.git(args...)
	if err != nil {
		return "", fmt.Errorf("diff: %w", err)
	}

	return output, nil
}

// Diff is a structured view of diff output.
type Diff struct {
	// Files contains the per-file diffs.
	Files []FileDiff

	// Stats contains aggregate statistics.
	Stats DiffStats
}

// FileDiff represents the diff for a single file.
type FileDiff struct {
	// OldPath is the path in the old version.
	OldPath string

	// NewPath is the path in the new version.
	NewPath string

	// IsBinary indicates a binary file with no textual hunks.
	IsBinary bool

	// Hunks contains the diff hunks.
	Hunks []DiffHunk

	// Stats contains line statistics.
	Stats DiffStats
}

// DiffHunk represents a single hunk in a diff.
type DiffHunk struct {
	// OldStart is the starting line in the old file.
	OldStart int

	// OldLines is the number of lines from the old file.
	OldLines int

	// NewStart is the starting line in the new file.
	NewStart int

	// NewLines is the number of lines in the new file.
	NewLines int

	// Header is the hunk header (e.g., "@@ -1,3 +1,4 @@").
	Header string
}

// DiffStats contains diff statistics.
type DiffStats struct {
	// Additions is the number of added lines.
	Additions int

	// Deletions is the number of deleted lines.
	Deletions int
}

// DiffSummary runs the diff and returns its structured form. The host uses
// it for file lists, per-file stats, and binary detection.
func (r *Repository) DiffSummary(opts DiffOptions) (*Diff, error) {
	raw, err := r.DiffRaw(opts)
	if err != nil {
		return nil, err
	}
	return ParseDiff(raw), nil
}

// ParseDiff parses unified diff text into a Diff struct. The text does not
// have to come from this repository; any displayed diff can be summarized.
func ParseDiff(output string) *Diff {
	diff := &Diff{}
	if output == "" {
		return diff
	}

	var current *FileDiff
	flush := func() {
		if current != nil {
			diff.Files = append(diff.Files, *current)
			current = nil
		}
	}

	for line := range strings.Lines(output) {
		line = strings.TrimSuffix(line, "\n")

		if strings.HasPrefix(line, "diff --git ") {
			flush()
			current = &FileDiff{}
			parts := strings.SplitN(line, " ", 4)
			if len(parts) >= 4 {
				current.OldPath = strings.TrimPrefix(parts[2], "a/")
				current.NewPath = strings.TrimPrefix(parts[3], "b/")
			}
			continue
		}
		if current == nil {
			continue
		}

		switch {
		case strings.HasPrefix(line, "rename from "):
			current.OldPath = strings.TrimPrefix(line, "rename from ")
		case strings.HasPrefix(line, "rename to "):
			current.NewPath = strings.TrimPrefix(line, "rename to ")
		case strings.HasPrefix(line, "Binary files "):
			current.IsBinary = true
		case strings.HasPrefix(line, "@@ "):
			h := parseHunkRanges(line)
			current.Hunks = append(current.Hunks, h)
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++ "):
			if len(current.Hunks) > 0 {
				current.Stats.Additions++
				diff.Stats.Additions++
			}
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "--- "):
			if len(current.Hunks) > 0 {
				current.Stats.Deletions++
				diff.Stats.Deletions++
			}
		}
	}
	flush()

	return diff
}

// parseHunkRanges parses "@@ -start,count +start,count @@" into a DiffHunk.
func parseHunkRanges(line string) DiffHunk {
	h := DiffHunk{Header: line}

	parts := strings.SplitN(line, "@@", 3)
	if len(parts) < 2 {
		return h
	}
	for _, rng := range strings.Fields(strings.TrimSpace(parts[1])) {
		switch {
		case strings.HasPrefix(rng, "-"):
			h.OldStart, h.OldLines = parseRangePair(rng[1:])
		case strings.HasPrefix(rng, "+"):
			h.NewStart, h.NewLines = parseRangePair(rng[1:])
		}
	}
	return h
}

func parseRangePair(s string) (start, count int) {
	nums := strings.Split(s, ",")
	start, _ = strconv.Atoi(nums[0])
	count = 1
	if len(nums) >= 2 {
		count, _ = strconv.Atoi(nums[1])
	}
	return start, count
}
