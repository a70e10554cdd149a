// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with zap logging via ShellExecutor, exposes OSCommandRunner
// for default process execution, and defines the abstractions runsweep uses to
// run git, gh, and fzf in a testable manner. Commands either capture their
// output or attach to the controlling terminal for interactive flows such as
// gh auth login.
package execshell
