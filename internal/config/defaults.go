package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Path:        "~/.config/hold",
			SQLiteFile:  "hold.db",
			JournalMode: "wal",
		},
		Capture: CaptureConfig{
			ForegroundIntervalSeconds: 5,
			BackgroundIntervalMinutes: 15,
			ViewRefreshSeconds:        2,
			MaxContentBytes:           1024 * 1024,
		},
		Notifications: NotificationsConfig{
			Enabled: true,
		},
		Security: SecurityConfig{
			PINMinLength: 4,
			PINMaxLength: 6,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
