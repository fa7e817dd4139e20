// Package config provides configuration loading and defaults for daypattern.
package config

// DefaultConfigDir is the default location for daypattern configuration.
const DefaultConfigDir = "~/.config/daypattern"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "daypattern.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// EnvPrefix is the prefix for environment overrides, e.g. DAYPATTERN_WINDOW_DAYS.
const EnvPrefix = "DAYPATTERN"

// DefaultWindowDays is how many recent days suggest and watch aggregate.
const DefaultWindowDays = 7

// DefaultLogLevel is the zap level used when none is configured.
const DefaultLogLevel = "info"

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}

// DefaultWatch holds the default watcher settings.
var DefaultWatch = Watch{
	Interval: "30m",
}
