package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/flavioheleno/bmp4/ssd1322"
)

func newMirrorCmd(a *app) *cobra.Command {
	var (
		width, height int
		kind          string
		spiBus        string
		dcPin, rstPin string
		interval      time.Duration
		duration      time.Duration
	)
	cmd := &cobra.Command{
		Use:   "mirror",
		Short: "Draw a test pattern and mirror it onto a SSD1322 panel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fb, err := newPatternFramebuffer(kind, width, height)
			if err != nil {
				return err
			}

			if _, err := host.Init(); err != nil {
				return fmt.Errorf("initialize periph.io: %w", err)
			}
			port, err := spireg.Open(spiBus)
			if err != nil {
				return fmt.Errorf("open SPI bus: %w", err)
			}
			defer port.Close()

			dc := gpioreg.ByName(dcPin)
			if dc == nil {
				return fmt.Errorf("GPIO pin %s not found", dcPin)
			}
			var rst gpio.PinIO
			if rstPin != "" {
				if rst = gpioreg.ByName(rstPin); rst == nil {
					return fmt.Errorf("GPIO pin %s not found", rstPin)
				}
			}

			dev, err := ssd1322.NewSPI(port, dc, &ssd1322.Opts{W: width, H: height, RST: rst, Logger: a.log})
			if err != nil {
				return err
			}
			defer dev.Halt()
			a.log.Info("mirroring", "device", dev.String(), "pattern", kind)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			err = dev.Mirror(ctx, fb, interval)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().IntVar(&width, "width", 256, "Panel width in pixels")
	cmd.Flags().IntVar(&height, "height", 64, "Panel height in pixels")
	cmd.Flags().StringVar(&kind, "kind", "bars", fmt.Sprintf("Pattern to draw %v", patternNames()))
	cmd.Flags().StringVar(&spiBus, "spi", "", "SPI bus name (empty for default)")
	cmd.Flags().StringVar(&dcPin, "dc", "GPIO25", "Data/Command pin name")
	cmd.Flags().StringVar(&rstPin, "rst", "", "Reset pin name (optional)")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "How often to check the framebuffer for changes")
	cmd.Flags().DurationVar(&duration, "duration", 0, "Stop after this long (0 = until interrupted)")
	return cmd
}
