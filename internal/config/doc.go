// Package config loads the optional TOML configuration shared by the quake
// command line tool and terminal UI.
//
// The Load function reads ~/.config/quake/config.toml unless another path is
// given. A missing file is not an error; built-in defaults are used instead.
//
// Example config.toml:
//
//	base_url = "https://earthquake.usgs.gov"
//	timeout = "30s"
//	log_level = "info"
//	retries = 3
//	min_magnitude = 2.5
//
// Every key is optional. Blank strings fall back to the defaults, and command
// line flags take precedence over the file.
package config
