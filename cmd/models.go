package cmd

import (
	"fmt"

	"brother-bridge/brotherql"

	"github.com/spf13/cobra"
)

// modelsCmd lists what the driver supports, for picking settings.
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List supported printer models and label media",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Printer models:")
		for _, name := range brotherql.Models() {
			fmt.Printf("  %s\n", name)
		}

		fmt.Println("\nLabel media:")
		for _, l := range brotherql.AllLabels() {
			size := fmt.Sprintf("%d dots wide", l.DotsPrintable)
			if l.DotsLength > 0 {
				size = fmt.Sprintf("%d x %d dots", l.DotsPrintable, l.DotsLength)
			}
			fmt.Printf("  %-8s %-32s %s\n", l.ID, l.Name, size)
		}
	},
}

func init() {
	RootCmd.AddCommand(modelsCmd)
}
