// Package version reports what build of pasteclean is running.
//
// Release builds stamp the variables below with ldflags:
//
//	go build -ldflags "-X github.com/jmylchreest/pasteclean/internal/version.Version=1.0.0 ..."
//
// Builds without ldflags fall back to the VCS information the Go toolchain
// embeds (commit, commit time, modified tree).
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	Version   = "dev"
	Commit    = ""
	Dirty     = ""
	BuildDate = ""
)

// Info is the resolved build description.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Dirty     bool   `json:"dirty" yaml:"dirty"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Get resolves build information, preferring ldflags values over VCS settings.
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		Dirty:     Dirty == "true",
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = strings.TrimPrefix(bi.Main.Version, "v")
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "" {
				info.BuildDate = s.Value
			}
		case "vcs.modified":
			if Dirty == "" {
				info.Dirty = s.Value == "true"
			}
		}
	}
	return info
}

// String is the short version, e.g. "1.2.0" or "1.2.0-dirty".
func String() string {
	info := Get()
	if info.Dirty {
		return info.Version + "-dirty"
	}
	return info.Version
}

// Full is the multi-line form printed by "pasteclean version".
func Full() string {
	info := Get()
	var sb strings.Builder
	fmt.Fprintf(&sb, "pasteclean %s\n", String())
	fmt.Fprintf(&sb, "  Commit:     %s\n", orUnknown(info.Commit))
	fmt.Fprintf(&sb, "  Built:      %s\n", orUnknown(info.BuildDate))
	fmt.Fprintf(&sb, "  Go version: %s\n", info.GoVersion)
	fmt.Fprintf(&sb, "  OS/Arch:    %s", info.Platform)
	return sb.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
