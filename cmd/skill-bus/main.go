// Command skill-bus is the operator CLI for inspecting and editing
// skill-bus configuration: subscription listings, match simulation,
// skill discovery, and telemetry stats.
package main

import "github.com/joeymnguyen/skill-bus/cmd/skill-bus/cmd"

func main() {
	cmd.Execute()
}
