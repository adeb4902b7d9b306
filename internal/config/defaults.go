package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver:     "sqlite",
			Path:       "~/.config/diary",
			SQLiteFile: "diary.db",
		},
		Logging: LoggingConfig{
			Level: "warn",
			Color: "auto",
		},
		Display: DisplayConfig{
			CaseSensitiveSort: false,
			StreakAnchor:      "today",
			DefaultSort:       "newest",
			TopTags:           5,
		},
		Categories: CategoriesConfig{
			Defaults: DefaultCategories(),
		},
	}
}

// DefaultCategories are the predefined, non-custom categories.
func DefaultCategories() []string {
	return []string{
		"Personal",
		"Work",
		"Travel",
		"Ideas",
		"Health",
	}
}
