package cmd

import (
	"fmt"
	"log/slog"
)

// Version connects to the bus driver and prints the negotiated protocol
// version.
type Version struct {
	Bus `embed:""`
}

func (v *Version) Run(logger *slog.Logger) error {
	client, err := v.connect(logger)
	if err != nil {
		return err
	}
	defer client.Close()

	fmt.Printf("bus protocol version 0x%04x\n", client.Version())
	return nil
}
