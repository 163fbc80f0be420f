package clipboard

import (
	"errors"
	"os"
	"os/exec"
	"sync"
)

// ErrUnavailable indicates that no clipboard utility is usable on this
// system.
var ErrUnavailable = errors.New("clipboard unavailable")

type backend interface {
	write(string) error
}

var (
	backendOnce sync.Once
	backendImpl backend
	backendErr  error

	lookPath = exec.LookPath
	getenv   = os.Getenv
)

// Write copies s to the system clipboard.
func Write(s string) error {
	b, err := getBackend()
	if err != nil {
		return err
	}
	return b.write(s)
}

// Available reports whether a clipboard backend could be selected. It is a
// cheap capability check for gating UI affordances.
func Available() bool {
	_, err := getBackend()
	return err == nil
}

func getBackend() (backend, error) {
	backendOnce.Do(func() {
		backendImpl, backendErr = selectBackend()
		if backendErr != nil {
			backendErr = errors.Join(ErrUnavailable, backendErr)
		}
	})
	return backendImpl, backendErr
}
