// Package logger provides the engine's leveled logging, in the style of
// rclone's fs.Logf: free functions over a single package-level sink, no
// structured-logging framework pulled in for what is fundamentally a
// handful of diagnostic lines.
package logger

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
)

// Level controls which Infof and Debugf calls are emitted.
type Level int32

const (
	LevelError Level = iota
	LevelInfo
	LevelDebug
)

var (
	level int32 = int32(LevelInfo)
	std         = log.New(os.Stderr, "", log.LstdFlags)
)

// SetLevel adjusts the minimum level that reaches the sink.
func SetLevel(l Level) {
	atomic.StoreInt32(&level, int32(l))
}

func currentLevel() Level {
	return Level(atomic.LoadInt32(&level))
}

// Errorf always logs, regardless of level.
func Errorf(format string, args ...any) {
	std.Output(2, "ERROR: "+fmt.Sprintf(format, args...)) //nolint:errcheck
}

// Infof logs at LevelInfo and above.
func Infof(format string, args ...any) {
	if currentLevel() >= LevelInfo {
		std.Output(2, "INFO: "+fmt.Sprintf(format, args...)) //nolint:errcheck
	}
}

// Debugf logs at LevelDebug only.
func Debugf(format string, args ...any) {
	if currentLevel() >= LevelDebug {
		std.Output(2, "DEBUG: "+fmt.Sprintf(format, args...)) //nolint:errcheck
	}
}
