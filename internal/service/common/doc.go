// Package common holds helpers shared by the command-line clients.
//
// It provides a gRPC client for the alarm clock daemon with per-call
// timeouts, and detects the current user and host so the daemon can log who
// issued each command.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
