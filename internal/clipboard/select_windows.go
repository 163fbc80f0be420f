//go:build windows

package clipboard

import "errors"

func selectBackend() (backend, error) {
	if _, err := lookPath("clip.exe"); err != nil {
		return nil, errors.New("missing clip.exe")
	}
	return cmdBackend{copyCmd: "clip.exe"}, nil
}
