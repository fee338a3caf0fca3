package main

import (
	"bytes"
	"fmt"

	gobmp "github.com/sergeymakinen/go-bmp"
	"github.com/spf13/cobra"

	"github.com/flavioheleno/bmp4"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Check a BMP file against the 4bpp grayscale layout and summarize it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			fh, ih, err := bmp4.ParseHeader(data)
			if err != nil {
				return err
			}
			if len(data) != int(fh.FileSize) {
				return fmt.Errorf("%w: file is %d bytes, header says %d", bmp4.ErrFormat, len(data), fh.FileSize)
			}

			// A generic decoder must accept the file as well.
			cfg, err := gobmp.DecodeConfig(bytes.NewReader(data))
			if err != nil {
				return fmt.Errorf("standard decoder rejected file: %w", err)
			}
			a.log.Debug("decoded", "width", cfg.Width, "height", cfg.Height)

			var hist [bmp4.NumColors]int
			for _, b := range data[fh.DataOffset:] {
				hist[b>>4]++
				hist[b&0x0F]++
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "size:       %dx%d\n", ih.Width, ih.Height)
			fmt.Fprintf(w, "file size:  %d bytes\n", fh.FileSize)
			fmt.Fprintf(w, "pixel data: %d bytes at offset %d\n", len(data)-int(fh.DataOffset), fh.DataOffset)
			fmt.Fprintln(w, "levels:")
			for i, n := range hist {
				if n > 0 {
					fmt.Fprintf(w, "  %2d #%02x%02x%02x %d\n", i, i*0x11, i*0x11, i*0x11, n)
				}
			}
			return nil
		},
	}
}
