//go:build !windows

// Package process terminates browser process trees left by the launcher.
package process

import "syscall"

// KillGroup sends SIGKILL to the process group led by pid so that Chrome's
// renderer and GPU children die with it. A non-positive pid is ignored.
func KillGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort: the launcher's own Kill runs afterwards as a fallback.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
