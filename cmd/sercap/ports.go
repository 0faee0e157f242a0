package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avrbench/sercap"
)

func newPortsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List serial devices detected on this system",
		RunE: func(cmd *cobra.Command, args []string) error {
			ports, err := sercap.AvailablePorts()
			if err != nil {
				return err
			}
			if len(ports) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "no serial devices found")
				return nil
			}
			for _, p := range ports {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}
