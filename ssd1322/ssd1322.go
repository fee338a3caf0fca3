package ssd1322

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/hashicorp/go-hclog"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

var (
	errHalted         = errors.New("ssd1322: halted")
	errBufferSize     = errors.New("ssd1322: invalid buffer size")
	errInvalidOpts    = errors.New("ssd1322: invalid options")
	resetDelay        = 200 * time.Millisecond
	defaultMirrorTick = 500 * time.Millisecond
)

// The display RAM is 120 column addresses wide, each addressing 4 pixels.
const (
	ramColumns      = 120
	pixelsPerColumn = 4
)

// Opts is the configuration for the SSD1322 display.
type Opts struct {
	W int // Width (default: 256, must be a multiple of 4 and ≤480)
	H int // Height (default: 64, must be ≤128)

	Rotated       bool // 180° rotation
	SwapTopBottom bool // Swap top/bottom display halves

	RST gpio.PinIO // Reset pin (optional)

	Logger hclog.Logger // Optional, silent if nil
}

// Dev is the device handle for the SSD1322 display.
type Dev struct {
	c   conn.Conn
	dc  gpio.PinOut
	rst gpio.PinIO
	log hclog.Logger

	rect         image.Rectangle
	stride       int
	columnOffset int // First RAM column address; one address covers 4 pixels

	// last is what the panel currently shows; nil until the first Show.
	last []byte

	halted bool
}

// NewSPI creates a new SSD1322 device connected via SPI.
//
// The SPI port is configured for 10MHz, Mode0, 8-bit transfers.
// opts can be nil to use defaults (256x64 display).
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{W: 256, H: 64}
	}
	if opts.W <= 0 || opts.W%pixelsPerColumn != 0 || opts.W > ramColumns*pixelsPerColumn {
		return nil, fmt.Errorf("%w: width must be a multiple of 4 between 4 and 480", errInvalidOpts)
	}
	if opts.H <= 0 || opts.H > 128 {
		return nil, fmt.Errorf("%w: height must be between 1 and 128", errInvalidOpts)
	}
	if dc == nil {
		return nil, fmt.Errorf("%w: dc pin is required", errInvalidOpts)
	}

	c, err := p.Connect(10*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("ssd1322: connect: %w", err)
	}

	l := opts.Logger
	if l == nil {
		l = hclog.NewNullLogger()
	}
	d := &Dev{
		c:            c,
		dc:           dc,
		rst:          opts.RST,
		log:          l.Named("ssd1322"),
		rect:         image.Rect(0, 0, opts.W, opts.H),
		stride:       opts.W / 2,
		columnOffset: (ramColumns - opts.W/pixelsPerColumn) / 2,
	}
	if err := d.init(opts); err != nil {
		return nil, err
	}
	d.log.Debug("panel initialized", "width", opts.W, "height", opts.H)
	return d, nil
}

func (d *Dev) init(opts *Opts) error {
	if d.rst != nil {
		if err := d.rst.Out(gpio.Low); err != nil {
			return fmt.Errorf("ssd1322: failed to pull RST low: %w", err)
		}
		time.Sleep(resetDelay)
		if err := d.rst.Out(gpio.High); err != nil {
			return fmt.Errorf("ssd1322: failed to pull RST high: %w", err)
		}
		time.Sleep(resetDelay)
	}

	remap1, remap2 := byte(0x14), byte(0x11)
	if opts.Rotated {
		remap1 = 0x06
	}
	if opts.SwapTopBottom {
		remap2 |= 0x02
	}

	cmds := []byte{
		0xFD, 0x12, // Unlock
		0xAE,       // Display OFF
		0xB3, 0xF2, // Clock divider
		0xCA, byte(opts.H - 1), // MUX ratio
		0xA2, 0x00, // Display offset
		0xA1, 0x00, // Start line
		0xA0, remap1, remap2, // Remap and dual COM mode
		0xAB, 0x01, // Internal VDD
		0xB4, 0xA0, 0xFD, // VSL
		0xC1, 0xFF, // Contrast
		0xC7, 0x0F, // Master contrast
		0xB9,       // Default grayscale table
		0xB1, 0xE2, // Phase length
		0xD1, 0x82, 0x20, // Display enhancement B
		0xBB, 0x1F, // Pre-charge voltage
		0xB6, 0x08, // Second pre-charge period
		0xBE, 0x07, // VCOMH
		0xA6, // Normal display
		0xA9, // Exit partial display
	}
	if err := d.sendCommands(cmds); err != nil {
		return err
	}
	if err := d.writeRows(0, d.rect.Dy(), make([]byte, d.stride*d.rect.Dy())); err != nil {
		return err
	}
	return d.sendCommands([]byte{0xAF}) // Display ON
}

func (d *Dev) sendCommands(cmds []byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	return d.c.Tx(cmds, nil)
}

func (d *Dev) sendData(data []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	return d.c.Tx(data, nil)
}

// writeRows writes full-width rows [y0, y1).
func (d *Dev) writeRows(y0, y1 int, pixels []byte) error {
	colStart := byte(d.columnOffset)
	colEnd := byte(d.columnOffset + d.rect.Dx()/pixelsPerColumn - 1)
	if err := d.sendCommands([]byte{
		0x15, colStart, colEnd, // Column address
		0x75, byte(y0), byte(y1 - 1), // Row address
		0x5C, // Write RAM
	}); err != nil {
		return err
	}
	return d.sendData(pixels)
}

// Bounds returns the panel size.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Show displays packed 4bpp rows, top row first. Only the band of rows that
// differs from the previous call is transferred.
func (d *Dev) Show(pixels []byte) error {
	if d.halted {
		return errHalted
	}
	if len(pixels) != d.stride*d.rect.Dy() {
		return errBufferSize
	}
	y0, y1 := d.changedRows(pixels)
	if y0 >= y1 {
		return nil
	}
	if err := d.writeRows(y0, y1, pixels[y0*d.stride:y1*d.stride]); err != nil {
		return err
	}
	if d.last == nil {
		d.last = make([]byte, len(pixels))
	}
	copy(d.last, pixels)
	d.log.Trace("rows updated", "from", y0, "to", y1)
	return nil
}

// changedRows returns the smallest [y0, y1) covering every row that differs
// from the panel contents, or y0 >= y1 when nothing changed.
func (d *Dev) changedRows(pixels []byte) (y0, y1 int) {
	h := d.rect.Dy()
	if d.last == nil {
		return 0, h
	}
	y0, y1 = h, 0
	for y := 0; y < h; y++ {
		row := pixels[y*d.stride : (y+1)*d.stride]
		if bytes.Equal(row, d.last[y*d.stride:(y+1)*d.stride]) {
			continue
		}
		if y < y0 {
			y0 = y
		}
		y1 = y + 1
	}
	return y0, y1
}

// Source provides consistent snapshots of a framebuffer, such as
// *framebuffer.Framebuffer.
type Source interface {
	SnapshotVersion() ([]byte, uint64)
}

// Mirror shows src on the panel every interval until ctx is done. A snapshot
// is pushed only when its version changes. A zero interval means 500ms.
func (d *Dev) Mirror(ctx context.Context, src Source, interval time.Duration) error {
	if interval <= 0 {
		interval = defaultMirrorTick
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	var shown uint64
	first := true
	for {
		if pix, v := src.SnapshotVersion(); first || v != shown {
			if err := d.Show(pix); err != nil {
				d.log.Error("mirror stopped", "error", err)
				return err
			}
			shown, first = v, false
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

// SetContrast sets the display contrast (0-255).
func (d *Dev) SetContrast(contrast byte) error {
	if d.halted {
		return errHalted
	}
	return d.sendCommands([]byte{0xC1, contrast})
}

// Invert inverts the display colors.
func (d *Dev) Invert(invert bool) error {
	if d.halted {
		return errHalted
	}
	mode := byte(0xA6)
	if invert {
		mode = 0xA7
	}
	return d.sendCommands([]byte{mode})
}

// Halt turns the display off. The Dev is unusable afterwards.
func (d *Dev) Halt() error {
	d.halted = true
	return d.sendCommands([]byte{0xAE})
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("ssd1322.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}
