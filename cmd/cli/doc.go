// Package cli constructs the runsweep command-line interface. It wires the
// cleanup command to the Viper configuration loader, the embedded defaults
// and the zap logger factory.
package cli
