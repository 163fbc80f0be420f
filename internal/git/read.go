package git

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// binarySniffLen bounds how much of a file the binary check inspects,
// matching git's own heuristic window.
const binarySniffLen = 8000

// ShowBlob returns the bytes of path at the given revision, for example
// "HEAD" or a commit hash. The path is relative to the repository root.
func (r *Repository) ShowBlob(rev, path string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out, err := r.git("show", rev+":"+path)
	if err != nil {
		return nil, fmt.Errorf("show %s:%s: %w", rev, path, err)
	}
	return []byte(out), nil
}

// ReadWorktreeFile returns the working tree bytes of a path relative to
// the repository root.
func (r *Repository) ReadWorktreeFile(path string) ([]byte, error) {
	full := filepath.Join(r.path, filepath.FromSlash(path))
	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPathNotFound
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// IsBinary reports whether data looks like binary content. A NUL byte in
// the leading window marks it binary, the same test git applies.
func IsBinary(data []byte) bool {
	if len(data) > binarySniffLen {
		data = data[:binarySniffLen]
	}
	return bytes.IndexByte(data, 0) >= 0
}

// IsBinaryPath reports whether the working tree file at path looks binary.
func (r *Repository) IsBinaryPath(path string) (bool, error) {
	data, err := r.ReadWorktreeFile(path)
	if err != nil {
		return false, err
	}
	return IsBinary(data), nil
}
