// Package config loads and saves albumrate's JSON settings file.
// A missing file silently yields defaults so the tool works with zero
// setup.
package config
