package version

import (
	"fmt"
	"runtime"
)

const Name = "ranobe-bot"

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func String() string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s, %s)", Name, Version, Commit, BuildTime, runtime.Version())
}
