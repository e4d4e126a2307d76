//go:build windows

// Package process terminates browser process trees left by the launcher.
package process

import (
	"os/exec"
	"strconv"
)

// KillGroup kills pid and its children with taskkill (/T = tree).
// A non-positive pid is ignored.
func KillGroup(pid int) {
	if pid <= 0 {
		return
	}
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
