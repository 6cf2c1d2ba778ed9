package module

import "rrational/internal/platform/config"

// Options holds configuration settings for the analysis module
type Options struct {
	Workers          int
	PageSize         int
	MaxRangeDays     int
	DryRun           bool
	EctopicMethod    string
	CorrectionMethod string
}

// merge applies caller overrides on top of env-derived options. Zero
// values leave the env value alone; a set DryRun flag turns dry-run on
// but never off, so CORE_ANALYZE_DRY_RUN survives a default flag
func merge(cfg, overrides Options) Options {
	if overrides.Workers != 0 {
		cfg.Workers = overrides.Workers
	}
	if overrides.PageSize != 0 {
		cfg.PageSize = overrides.PageSize
	}
	if overrides.MaxRangeDays != 0 {
		cfg.MaxRangeDays = overrides.MaxRangeDays
	}
	if overrides.EctopicMethod != "" {
		cfg.EctopicMethod = overrides.EctopicMethod
	}
	if overrides.CorrectionMethod != "" {
		cfg.CorrectionMethod = overrides.CorrectionMethod
	}
	if overrides.DryRun {
		cfg.DryRun = true
	}
	return cfg
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	af := cfg.Prefix("CORE_ANALYZE_")
	return Options{
		Workers:          af.MayInt("WORKERS", 2),
		PageSize:         af.MayInt("PAGE_SIZE", 200),
		MaxRangeDays:     af.MayInt("MAX_RANGE_DAYS", 0),
		DryRun:           af.MayBool("DRY_RUN", false),
		EctopicMethod:    af.MayString("ECTOPIC_METHOD", ""),
		CorrectionMethod: af.MayString("CORRECTION_METHOD", ""),
	}
}
