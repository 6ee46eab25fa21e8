package version

import (
	"fmt"
	"runtime"
)

// Injected via ldflags at build time.
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
}

func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

func String() string {
	return fmt.Sprintf("storefront %s", Version)
}

func Verbose() string {
	info := Get()
	return fmt.Sprintf("storefront %s (commit: %s, built: %s, go: %s)",
		info.Version, info.GitCommit, info.BuildDate, info.GoVersion)
}
