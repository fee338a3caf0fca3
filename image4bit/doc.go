// Package image4bit provides a 4-bit grayscale image format whose rows are the
// pixel array of a 16-color grayscale BMP.
//
// Pixels are stored in horizontal nibble packing where each byte contains 2 pixels.
//
// Memory layout example for a 4-pixel row:
//
//	Pixels: 0  1  2  3
//	Values: 5  10 3  12
//	Bytes:  0x5A     0x3C
//	        (0x5A = high nibble: 5, low nibble: A=10)
//	        (0x3C = high nibble: 3, low nibble: C=12)
//
// Gray level Y maps to palette entry Y of the BMP, whose RGB value is Y*0x11
// (see Gray4.Level).
//
// Example usage:
//
//	// A 600x800 image, every row 300 bytes. Sizes that a BMP can carry
//	// without row padding are the ones bmp4.New accepts.
//	img := image4bit.NewHorizontalNibble(image.Rect(0, 0, 600, 800))
//	img.SetGray4(10, 20, image4bit.Gray4{Y: 8})
//
//	// Use with standard Go image operations
//	draw.Draw(img, img.Bounds(), image.NewUniform(image4bit.Gray4{Y: 15}), image.Point{}, draw.Src)
package image4bit
