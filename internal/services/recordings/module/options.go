package module

import (
	"rrational/internal/platform/config"
)

// Options configures the recordings module
type Options struct {
	HardLimit int
}

// FromConfig reads options from config.Conf
func FromConfig(cfg config.Conf) Options {
	rf := cfg.Prefix("CORE_RECORDINGS_")
	return Options{
		HardLimit: rf.MayInt("HARD_LIMIT", 1000),
	}
}
