package config

// defaultMerger overlays the non-zero fields of an override onto a base.
type defaultMerger struct{}

// Merge merges two configurations.
// The base values are only overwritten if the override values are non-empty.
func (m *defaultMerger) Merge(base, override *Config) *Config {
	result := *base

	overrideString(&result.Log.Level, override.Log.Level)
	overrideString(&result.Log.Format, override.Log.Format)
	overrideString(&result.Log.Output, override.Log.Output)

	overrideInt(&result.Format.Width, override.Format.Width)
	overrideString(&result.Format.Mode, override.Format.Mode)
	overrideString(&result.Format.Color, override.Format.Color)

	overrideString(&result.Checksum.Algorithm, override.Checksum.Algorithm)
	overrideString(&result.Checksum.OutputFormat, override.Checksum.OutputFormat)
	overrideInt(&result.Checksum.Workers, override.Checksum.Workers)
	if override.Checksum.Progress != nil {
		progress := *override.Checksum.Progress
		result.Checksum.Progress = &progress
	}

	return &result
}

func overrideString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func overrideInt(dst *int, src int) {
	if src != 0 {
		*dst = src
	}
}
