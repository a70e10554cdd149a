// Package cleanup drives the interactive deletion of GitHub Actions workflow runs.
//
// CommandBuilder wires the cobra command, Service runs the
// workflow-selection, run-selection and confirmation loop, and the
// configuration types describe the github, auth, selection and cleanup
// sections of the application configuration.
package cleanup
