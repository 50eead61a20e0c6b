// Package client implements the command-line clients of the alarm clock
// daemon: add, list, remove, stop and watch.
//
// Each command finds the daemon through its PID file (unless an address is
// given), calls it over gRPC and prints a short human-readable result, or
// protobuf JSON when asked.
package client
