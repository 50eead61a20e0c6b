// Package server runs the alarm clock daemon.
//
// The daemon owns one engine and exposes it over gRPC. It records itself in
// a PID file so clients can find it and a second daemon refuses to start.
package server
