package process

// Notes:
// - KillGroup is only exercised with PIDs that cannot belong to a live
//   process group. Real teardown is covered by the printer's browser tests.

import "testing"

func TestKillGroup_IgnoresInvalidPIDs(t *testing.T) {
	t.Parallel()

	// pid 0 would target the current process group; it must be ignored.
	KillGroup(0)
	KillGroup(-1)
	KillGroup(999999999)
}
