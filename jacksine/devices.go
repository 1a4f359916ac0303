package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	audio "github.com/gordonklaus/jacksine"
	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List host APIs and their output devices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		apis, err := audio.ListOutputs()
		if err != nil {
			return err
		}
		printDevices(cmd.OutOrStdout(), apis)
		return nil
	},
}

func printDevices(w io.Writer, apis []audio.HostAPIInfo) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush()
	for _, h := range apis {
		mark := ""
		if h.Default {
			mark = " (default)"
		}
		fmt.Fprintf(tw, "%s%s\n", h.Name, mark)
		if len(h.Outputs) == 0 {
			fmt.Fprintln(tw, "\tno output devices")
		}
		for _, d := range h.Outputs {
			mark := " "
			if d.Default {
				mark = "*"
			}
			fmt.Fprintf(tw, "  %s %s\t%d ch\t%.0f Hz\n", mark, d.Name, d.Channels, d.SampleRate)
		}
	}
}
