// Package config defines the lock daemon settings and provides helpers to
// load, validate and save them in YAML format.
//
// Timing constants of the lock are deliberately absent: they are fixed in the
// domain package and cannot be changed at runtime.
package config
