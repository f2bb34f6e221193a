// Package config loads and validates the dbx configuration file.
//
// The config lives at ~/.config/dbx/config.toml. When the file is missing an
// embedded default is used instead, so dbx works out of the box. The loaded
// config travels through a context.Context so commands never re-read the
// file.
package config
