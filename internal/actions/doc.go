// Package actions talks to the GitHub Actions REST endpoints for workflows and
// workflow runs and defines the labels used to present them for selection.
package actions
