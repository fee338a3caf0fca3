// Package ssd1322 mirrors a 4-bit grayscale framebuffer onto a SSD1322 OLED
// panel via SPI.
//
// A device that serves its framebuffer as a BMP often has no screen of its
// own to check what it is serving. The SSD1322 is a 16-level grayscale OLED
// controller with up to 480×128 pixels and the same nibble packing as a 4bpp
// BMP, so a panel attached over SPI can show the framebuffer as is.
//
// # Hardware Connection
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL/CLK     → SPI Clock (SCLK)
//	SDA/MOSI    → SPI Data (MOSI)
//	DC          → GPIO (any available pin)
//	CS          → SPI Chip Select (or GND if always selected)
//	RES         → Optional: GPIO for hardware reset
//
// # Usage
//
//	host.Init()
//	port, _ := spireg.Open("")
//	dev, err := ssd1322.NewSPI(port, gpioreg.ByName("GPIO25"), &ssd1322.Opts{W: 256, H: 64})
//	if err != nil {
//		return err
//	}
//	defer dev.Halt()
//
//	fb, _ := framebuffer.New(256, 64)
//	go dev.Mirror(ctx, fb, time.Second)
//
// The framebuffer and the panel must have the same size. Show only transfers
// the rows that changed since the previous frame.
//
// # Datasheet
//
// https://www.displayfuture.com/Display/datasheet/controller/SSD1322.pdf
package ssd1322
