// Command alarm-clock is a single-user alarm clock: a daemon that rings at
// scheduled times of day, its command-line clients and a terminal interface.
package main

import "github.com/oshokin/alarm-clock/cmd/alarm-clock/cmd"

func main() {
	cmd.Execute()
}
