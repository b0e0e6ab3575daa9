package version

import "runtime/debug"

// Get reports the VCS revision the binary was built from, or "unavailable".
func Get() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unavailable"
	}

	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}

	return "unavailable"
}
