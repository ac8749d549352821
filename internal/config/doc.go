// Package config loads and saves the squirrel-maker settings file.
//
// The file holds the tool location, target arch, make directory and a
// "release" section with every Squirrel pack option. YAML, TOML and JSON are
// accepted on load; SQUIRREL_* environment variables override file values.
package config
