// Package githubcli wraps the GitHub CLI authentication subcommands.
//
// Commands run through execshell so interactions with gh can be replaced by
// recording stubs in tests.
package githubcli
