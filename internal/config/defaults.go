package config

// GetDefaults returns the default configuration values as a map
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"policy":     "worktree",
		"manifest":   "package.json",
		"manifests":  []string{"package.json", "pubspec.yaml"},
		"backend":    "cli",
		"git_binary": "git",
		"tickets":    true,
		"header":     true,
		"debug":      false,
	}
}
