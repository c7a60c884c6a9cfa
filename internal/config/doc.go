// Package config loads, validates, and defaults recap's TOML configuration.
//
// Configuration resolves from an explicit --config path, then
// ~/.config/recap/config.toml, then ./recap.toml, falling back to built-in
// defaults when no file exists. Path fields are tilde-expanded and made
// absolute during load, so downstream packages never deal with relative or
// home-relative paths.
package config
