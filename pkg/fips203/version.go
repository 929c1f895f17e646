package fips203

import "runtime/debug"

// Version is populated at build time via ldflags.
var Version = "v0.0.0-in-progress"

const circlModule = "github.com/cloudflare/circl"

// WrapperVersion returns the semantic version populated at build time via
// ldflags. In development it defaults to v0.0.0-in-progress.
func WrapperVersion() string {
	return Version
}

// BackendVersion returns the version of the circl module linked into the
// binary, or "unknown" when build information is unavailable.
func BackendVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, dep := range info.Deps {
		if dep.Path != circlModule {
			continue
		}
		if dep.Replace != nil {
			return dep.Replace.Version
		}
		return dep.Version
	}
	return "unknown"
}
