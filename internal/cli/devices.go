package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/darvos-rgb/darvos/internal/input"
)

// Represents the 'darvos devices' command.
type DevicesCmd struct{}

// Executes the devices command.
//
// Prints every input device with its name, in the order a query is matched
// against them. Unnamed devices are listed but can never match.
func (c *DevicesCmd) Run(ctx context.Context) error {
	if err := requireRoot(); err != nil {
		return err
	}

	devices, err := input.Local().Devices()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tNAME")
	for _, dev := range devices {
		name := dev.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "%s\t%s\n", dev.Path, name)
	}
	return w.Flush()
}
