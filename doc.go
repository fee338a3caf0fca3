// Package bmp4 encodes 16-level grayscale framebuffers as 4 bits-per-pixel BMP
// files, the format e-ink readers such as the Kindle display natively.
//
// # File Layout
//
// Every file is a 118-byte prefix followed by the packed pixels:
//
//	offset 0:   "BM"
//	offset 2:   uint32 file size
//	offset 6:   uint32 reserved (0)
//	offset 10:  uint32 data offset (118)
//	offset 14:  uint32 DIB header size (40)
//	offset 18:  int32  width
//	offset 22:  int32  height
//	offset 26:  uint16 planes (1)
//	offset 28:  uint16 bits per pixel (4)
//	offset 30:  uint32 compression (0)
//	offset 34:  uint32 image size (0)
//	offset 38:  int32  x pixels per meter (= width)
//	offset 42:  int32  y pixels per meter (= height)
//	offset 46:  uint32 colors used (16)
//	offset 50:  uint32 important colors (0)
//	offset 54:  16 × {r, g, b, 0}, entry i is gray i*0x11
//	offset 118: height × width/2 bytes of pixels
//
// All integers are little-endian regardless of the host.
//
// # Geometry
//
// Two pixels share a byte, high nibble first, and BMP rows must end on a
// 4-byte boundary. Instead of padding rows the encoder requires width/2 to be
// a multiple of 4, so the framebuffer rows are the file rows byte for byte.
// New rejects any other width with ErrInvalidDimensions; do it once at start
// up:
//
//	enc, err := bmp4.New(600, 800)
//	if err != nil {
//		log.Fatal(err)
//	}
//	...
//	w.Header().Set("Content-Type", bmp4.ContentType)
//	enc.Write(w, fb.Snapshot())
//
// # Row Order
//
// Rows are written top row first, in framebuffer order. Conventional BMP
// readers treat a positive height as bottom-up and therefore show the image
// vertically mirrored; the client this format was made for reads it as is.
package bmp4
