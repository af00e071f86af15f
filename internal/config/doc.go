// Package config provides configuration management for the zipnest CLI.
//
// # Configuration File
//
// The default configuration file location is <xdg config>/zipnest/config.toml,
// with the current directory searched first. The file uses TOML:
//
//	[source]
//	path = "/srv/app/sessions"
//
//	[archive]
//	root_name = "archives"
//	daily_format = "2006-01-02.zip"
//	hourly_format = "15.zip"
//	exclude = ["cache"]
//
//	[retention]
//	keep_days = 14
//
//	[watch]
//	schedule = "0 * * * *"
//
// Any key can be overridden through the environment with the ZIPNEST_
// prefix, e.g. ZIPNEST_SOURCE_PATH.
//
// # Validation
//
// Loaded configurations are validated automatically: the archive root
// must be a bare directory name, the hourly filename format must change
// every hour, and the daily format must be stable within a day. Use
// [Validate] to check a configuration manually.
package config
