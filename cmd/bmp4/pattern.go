package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flavioheleno/bmp4/framebuffer"
	"github.com/flavioheleno/bmp4/image4bit"
)

var patterns = map[string]func(img *image4bit.HorizontalNibble){
	"gradient": drawGradient,
	"checker":  drawChecker,
	"bars":     drawBars,
	"black":    func(img *image4bit.HorizontalNibble) { img.Fill(image4bit.Gray4{Y: 0}) },
	"white":    func(img *image4bit.HorizontalNibble) { img.Fill(image4bit.Gray4{Y: 15}) },
}

// drawGradient goes from black on the left to white on the right.
func drawGradient(img *image4bit.HorizontalNibble) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetGray4(x, y, image4bit.Gray4{Y: byte((x - b.Min.X) * 16 / b.Dx())})
		}
	}
}

// drawChecker draws 8×8 black and white squares.
func drawChecker(img *image4bit.HorizontalNibble) {
	const size = 8
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var gray byte
			if ((x/size)+(y/size))%2 == 0 {
				gray = 15
			}
			img.SetGray4(x, y, image4bit.Gray4{Y: gray})
		}
	}
}

// drawBars draws 16 vertical bars, one per gray level, then one row band
// per gray level across the bottom quarter so the row order is visible.
func drawBars(img *image4bit.HorizontalNibble) {
	b := img.Bounds()
	split := b.Max.Y - b.Dy()/4
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			level := (x - b.Min.X) * 16 / b.Dx()
			if y >= split {
				level = 15 - (y-split)*16/(b.Max.Y-split)
			}
			img.SetGray4(x, y, image4bit.Gray4{Y: byte(level)})
		}
	}
}

func patternNames() []string {
	return []string{"gradient", "checker", "bars", "black", "white"}
}

// newPatternFramebuffer returns a framebuffer with the named pattern drawn.
func newPatternFramebuffer(kind string, width, height int) (*framebuffer.Framebuffer, error) {
	draw, ok := patterns[kind]
	if !ok {
		return nil, fmt.Errorf("unknown pattern %q, want one of %v", kind, patternNames())
	}
	fb, err := framebuffer.New(width, height)
	if err != nil {
		return nil, err
	}
	fb.Update(draw)
	return fb, nil
}

func newPatternCmd(a *app) *cobra.Command {
	var (
		width, height int
		kind, out     string
	)
	cmd := &cobra.Command{
		Use:   "pattern",
		Short: "Write a test pattern as a BMP file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fb, err := newPatternFramebuffer(kind, width, height)
			if err != nil {
				return err
			}
			data, err := fb.EncodeBMP()
			if err != nil {
				return err
			}
			a.log.Info("pattern encoded", "kind", kind, "bounds", fb.Bounds(), "bytes", len(data))
			return writeOutput(cmd, out, data)
		},
	}
	cmd.Flags().IntVar(&width, "width", 600, "Image width in pixels (width/2 must be a multiple of 4)")
	cmd.Flags().IntVar(&height, "height", 800, "Image height in pixels")
	cmd.Flags().StringVar(&kind, "kind", "gradient", fmt.Sprintf("Pattern to draw %v", patternNames()))
	cmd.Flags().StringVarP(&out, "out", "o", "-", "Output file, - for stdout")
	return cmd
}
