// Package logger exposes the process-wide structured logger.
package logger

import (
	"fmt"
	"os"

	glog "github.com/Laisky/go-utils/v6/log"

	"github.com/Laisky/mcp-chat/common/config"
)

// Logger is the shared structured logger. It defaults to an info-level
// console logger so packages and tests can log before Setup runs.
var Logger glog.Logger

func init() {
	logger, err := glog.NewConsoleWithName("mcp-chat", glog.LevelInfo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %+v\n", err)
		os.Exit(1)
	}
	Logger = logger
}

// Setup reconfigures the global logger from configuration. Level is raised to
// debug when DEBUG is set.
func Setup() {
	level := glog.LevelInfo
	if config.DebugEnabled {
		level = glog.LevelDebug
	}
	logger, err := glog.NewConsoleWithName("mcp-chat", level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %+v\n", err)
		os.Exit(1)
	}
	Logger = logger
}
