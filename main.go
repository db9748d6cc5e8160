// Command mcsched prepares multicast demand schedules. See cmd/root.go for the
// command tree.
package main

import (
	"github.com/satnet-sim/mcsched/cmd"
)

func main() {
	cmd.Execute()
}
