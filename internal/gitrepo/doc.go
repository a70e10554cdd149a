// Package gitrepo locates the git directory of a working tree and derives the
// GitHub owner/name identifier from the remote URL recorded in its config.
package gitrepo
