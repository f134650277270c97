package cliconfig

// MergeConfig merges source config into target, updating sources tracking.
// Only non-empty values from source are applied.
func MergeConfig(target, source *CLIConfig, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	mergeString(target, &target.Storage, source.Storage, "storage", sourceType)
	mergeString(target, &target.DataDir, source.DataDir, "dataDir", sourceType)
	mergeString(target, &target.LogLevel, source.LogLevel, "logLevel", sourceType)
	mergeString(target, &target.LogFormat, source.LogFormat, "logFormat", sourceType)
	mergeString(target, &target.LogFile, source.LogFile, "logFile", sourceType)
	mergeString(target, &target.CountryCode, source.CountryCode, "countryCode", sourceType)

	// For booleans, checking `if source.JSON` cannot detect an explicit
	// false. SetFields says whether the key was present in the source.
	if boolIsSet(source, "json") {
		target.JSON = source.JSON
		target.Sources["json"] = sourceType
	}
}

func mergeString(target *CLIConfig, dst *string, value, key, sourceType string) {
	if value == "" {
		return
	}
	*dst = value
	target.Sources[key] = sourceType
}

// boolIsSet reports whether a boolean field identified by its YAML key was
// explicitly set in the source config. Without SetFields only true counts
// as set.
func boolIsSet(cfg *CLIConfig, yamlKey string) bool {
	if cfg.SetFields != nil {
		return cfg.SetFields[yamlKey]
	}
	switch yamlKey {
	case "json":
		return cfg.JSON
	}
	return false
}
