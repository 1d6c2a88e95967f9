package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"brother-bridge/brotherql"
	"brother-bridge/feature/printing"

	"github.com/spf13/cobra"
)

var printFlags struct {
	model     string
	media     string
	target    string
	rotate    int
	threshold int
	autoCut   bool
	hq        bool
	compress  bool
	timeout   int
}

// printCmd prints a single image without touching the registry, the way
// a quick smoke test from a shell wants to work.
var printCmd = &cobra.Command{
	Use:   "print <image>",
	Short: "Print a label image directly",
	Long: `Converts a PNG or JPEG image and sends it to a printer without
registering a machine. The image width must match the printable width of
the media (after rotation).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		img, err := printing.DecodeImage(f)
		if err != nil {
			return err
		}

		model, err := brotherql.ModelByName(printFlags.model)
		if err != nil {
			return err
		}
		label, err := brotherql.LabelByID(printFlags.media)
		if err != nil {
			return err
		}

		data, err := brotherql.Convert(img, brotherql.ConvertOptions{
			Model:       model,
			Label:       label,
			Rotate:      printFlags.rotate,
			Threshold:   uint8(printFlags.threshold),
			AutoCut:     printFlags.autoCut,
			HighQuality: printFlags.hq,
			Compress:    printFlags.compress,
		})
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(),
			time.Duration(printFlags.timeout)*time.Second)
		defer cancel()

		backend, err := brotherql.OpenBackend(ctx, printFlags.target)
		if err != nil {
			return err
		}
		defer backend.Close()

		if err := backend.Send(ctx, data); err != nil {
			return err
		}

		fmt.Printf("printed %s (%d bytes) on %s\n", args[0], len(data), printFlags.target)
		return nil
	},
}

func init() {
	printCmd.Flags().StringVar(&printFlags.model, "model", "PT-P750W", "printer model")
	printCmd.Flags().StringVar(&printFlags.media, "media", "12", "label media id")
	printCmd.Flags().StringVar(&printFlags.target, "target", "", "printer address (tcp://, usb:// or file://)")
	printCmd.Flags().IntVar(&printFlags.rotate, "rotate", 0, "rotation (0, 90, 180 or 270)")
	printCmd.Flags().IntVar(&printFlags.threshold, "threshold", int(brotherql.DefaultThreshold), "monochrome threshold (0-255)")
	printCmd.Flags().BoolVar(&printFlags.autoCut, "cut", true, "cut after printing")
	printCmd.Flags().BoolVar(&printFlags.hq, "hq", true, "prefer print quality")
	printCmd.Flags().BoolVar(&printFlags.compress, "compress", false, "compress raster data")
	printCmd.Flags().IntVar(&printFlags.timeout, "timeout", 30, "send timeout in seconds")
	_ = printCmd.MarkFlagRequired("target")

	RootCmd.AddCommand(printCmd)
}
