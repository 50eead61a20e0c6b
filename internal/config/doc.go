// Package config defines the alarm clock settings and provides helpers to
// load, validate and save them in YAML format.
//
// Validate fills in defaults, so a missing or partial file still produces a
// complete Config.
package config
