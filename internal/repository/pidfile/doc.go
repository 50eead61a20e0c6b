// Package pidfile records the running daemon on disk.
//
// The file holds the daemon's process ID, listen address and start time as
// protobuf JSON. The daemon acquires it on start and removes it on exit;
// command-line clients read it to find the daemon and to report clearly when
// it is not running. Liveness is checked against the process table.
package pidfile
