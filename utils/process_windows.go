//go:build windows

package utils

import "os/exec"

// SetProcessGroup does nothing on windows.
func SetProcessGroup(*exec.Cmd) {}

// KillProcessGroup kills only the process itself on windows.
func KillProcessGroup(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
