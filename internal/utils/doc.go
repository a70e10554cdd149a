// Package utils holds the process-level plumbing shared by the runsweep
// commands: Viper-backed configuration loading, zap logger construction,
// context accessors and output helpers.
package utils
