package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/flavioheleno/bmp4"
)

func newEncodeCmd(a *app) *cobra.Command {
	var (
		width, height int
		in, out       string
	)
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Wrap a raw packed 4bpp framebuffer dump in a BMP header",
		Long: `Wrap a raw packed 4bpp framebuffer dump in a BMP header.

The input must be exactly height*width/2 bytes: rows top first, two pixels
per byte, high nibble first. Rows are written in the same order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := bmp4.New(width, height)
			if err != nil {
				return err
			}
			pixels, err := readInput(cmd, in)
			if err != nil {
				return err
			}
			data, err := enc.Encode(pixels)
			if err != nil {
				return err
			}
			a.log.Info("encoded", "width", width, "height", height, "bytes", len(data))
			return writeOutput(cmd, out, data)
		},
	}
	cmd.Flags().IntVar(&width, "width", 600, "Image width in pixels (width/2 must be a multiple of 4)")
	cmd.Flags().IntVar(&height, "height", 800, "Image height in pixels")
	cmd.Flags().StringVarP(&in, "in", "i", "-", "Raw pixel file, - for stdin")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "Output file, - for stdout")
	return cmd
}

func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return b, nil
}

func writeOutput(cmd *cobra.Command, name string, data []byte) error {
	if name == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
