package logger

import "testing"

// These exercise the level-gating logic only; output goes to stderr and
// isn't captured, matching the teacher's own style of log smoke tests.

func TestSetLevelGatesDebug(t *testing.T) {
	SetLevel(LevelError)
	Debugf("should not panic: %d", 1)
	Infof("should not panic: %d", 2)

	SetLevel(LevelDebug)
	Debugf("should not panic: %d", 3)

	SetLevel(LevelInfo)
}

func TestErrorfAlwaysLogs(t *testing.T) {
	SetLevel(LevelError)
	Errorf("boom: %s", "reason")
}
