package clipboard

import "os/exec"

// cmdBackend pipes text into an external copy utility.
type cmdBackend struct {
	copyCmd  string
	copyArgs []string
}

func (b cmdBackend) write(s string) error {
	cmd := exec.Command(b.copyCmd, b.copyArgs...)

	in, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	if _, err := in.Write([]byte(s)); err != nil {
		return err
	}
	if err := in.Close(); err != nil {
		return err
	}
	return cmd.Wait()
}
