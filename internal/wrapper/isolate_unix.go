//go:build unix

package wrapper

import (
	"os/exec"
	"syscall"
)

// isolate starts the client in its own process group and, on cancellation,
// kills the whole group so helpers it spawned (e.g. `go run` builds) go too.
func isolate(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
		Pgid:    0,
	}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
