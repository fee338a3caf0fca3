package bmp4

import (
	"encoding/binary"
	"fmt"
)

// Sizes of the fixed parts of the file, in bytes.
const (
	FileHeaderLen = 14
	InfoHeaderLen = 40
	PaletteLen    = NumColors * 4

	// DataOffset is where the pixel array starts in every encoded file.
	DataOffset = FileHeaderLen + InfoHeaderLen + PaletteLen
)

// Fixed format parameters.
const (
	BitsPerPixel = 4
	NumColors    = 1 << BitsPerPixel
)

// FileHeader is the 14-byte BITMAPFILEHEADER.
type FileHeader struct {
	Signature  [2]byte // "BM"
	FileSize   uint32  // Size of the whole file
	Reserved   uint32  // Always 0
	DataOffset uint32  // Offset of the pixel array from the start of the file
}

// AppendBinary appends the little-endian encoding of h to b.
func (h FileHeader) AppendBinary(b []byte) ([]byte, error) {
	b = append(b, h.Signature[:]...)
	b = binary.LittleEndian.AppendUint32(b, h.FileSize)
	b = binary.LittleEndian.AppendUint32(b, h.Reserved)
	b = binary.LittleEndian.AppendUint32(b, h.DataOffset)
	return b, nil
}

// MarshalBinary returns the 14 bytes of h.
func (h FileHeader) MarshalBinary() ([]byte, error) {
	return h.AppendBinary(make([]byte, 0, FileHeaderLen))
}

// InfoHeader is the 40-byte BITMAPINFOHEADER.
type InfoHeader struct {
	HeaderSize      uint32 // Size of this header (40)
	Width           int32  // Width in pixels
	Height          int32  // Height in pixels; positive, rows are still written top first
	Planes          uint16 // Always 1
	BitsPerPixel    uint16 // Always 4
	Compression     uint32 // 0 = uncompressed
	ImageSize       uint32 // 0 is allowed for uncompressed images
	XPixelsPerMeter int32  // Placeholder, set to the width
	YPixelsPerMeter int32  // Placeholder, set to the height
	ColorsUsed      uint32 // 16
	ColorsImportant uint32 // 0 = all
}

// AppendBinary appends the little-endian encoding of h to b.
func (h InfoHeader) AppendBinary(b []byte) ([]byte, error) {
	le := binary.LittleEndian
	b = le.AppendUint32(b, h.HeaderSize)
	b = le.AppendUint32(b, uint32(h.Width))
	b = le.AppendUint32(b, uint32(h.Height))
	b = le.AppendUint16(b, h.Planes)
	b = le.AppendUint16(b, h.BitsPerPixel)
	b = le.AppendUint32(b, h.Compression)
	b = le.AppendUint32(b, h.ImageSize)
	b = le.AppendUint32(b, uint32(h.XPixelsPerMeter))
	b = le.AppendUint32(b, uint32(h.YPixelsPerMeter))
	b = le.AppendUint32(b, h.ColorsUsed)
	b = le.AppendUint32(b, h.ColorsImportant)
	return b, nil
}

// MarshalBinary returns the 40 bytes of h.
func (h InfoHeader) MarshalBinary() ([]byte, error) {
	return h.AppendBinary(make([]byte, 0, InfoHeaderLen))
}

// PaletteEntry is one color of the palette. The bytes are written in field
// order; for a gray palette the channel order does not matter.
type PaletteEntry struct {
	R, G, B  uint8
	Reserved uint8
}

var grayPalette = func() (p [NumColors]PaletteEntry) {
	for i := range p {
		v := uint8(i * 0x11)
		p[i] = PaletteEntry{R: v, G: v, B: v}
	}
	return
}()

// Palette returns the fixed grayscale ramp: entry i is gray i*0x11.
func Palette() [NumColors]PaletteEntry {
	return grayPalette
}

func appendPalette(b []byte) []byte {
	for _, c := range grayPalette {
		b = append(b, c.R, c.G, c.B, c.Reserved)
	}
	return b
}

func newFileHeader(pixelBytes int) FileHeader {
	return FileHeader{
		Signature:  [2]byte{'B', 'M'},
		FileSize:   uint32(DataOffset + pixelBytes),
		DataOffset: DataOffset,
	}
}

func newInfoHeader(width, height int) InfoHeader {
	return InfoHeader{
		HeaderSize:      InfoHeaderLen,
		Width:           int32(width),
		Height:          int32(height),
		Planes:          1,
		BitsPerPixel:    BitsPerPixel,
		XPixelsPerMeter: int32(width),
		YPixelsPerMeter: int32(height),
		ColorsUsed:      NumColors,
	}
}

// ParseHeader reads back the file header and info header at the start of b
// and checks that they describe a file this package could have written.
// The palette is checked too, so b must hold at least DataOffset bytes.
func ParseHeader(b []byte) (FileHeader, InfoHeader, error) {
	var fh FileHeader
	var ih InfoHeader
	if len(b) < DataOffset {
		return fh, ih, fmt.Errorf("%w: %d bytes, need at least %d", ErrFormat, len(b), DataOffset)
	}
	le := binary.LittleEndian

	copy(fh.Signature[:], b[0:2])
	fh.FileSize = le.Uint32(b[2:])
	fh.Reserved = le.Uint32(b[6:])
	fh.DataOffset = le.Uint32(b[10:])

	h := b[FileHeaderLen:]
	ih.HeaderSize = le.Uint32(h[0:])
	ih.Width = int32(le.Uint32(h[4:]))
	ih.Height = int32(le.Uint32(h[8:]))
	ih.Planes = le.Uint16(h[12:])
	ih.BitsPerPixel = le.Uint16(h[14:])
	ih.Compression = le.Uint32(h[16:])
	ih.ImageSize = le.Uint32(h[20:])
	ih.XPixelsPerMeter = int32(le.Uint32(h[24:]))
	ih.YPixelsPerMeter = int32(le.Uint32(h[28:]))
	ih.ColorsUsed = le.Uint32(h[32:])
	ih.ColorsImportant = le.Uint32(h[36:])

	switch {
	case string(fh.Signature[:]) != "BM":
		return fh, ih, fmt.Errorf("%w: bad signature %q", ErrFormat, fh.Signature[:])
	case fh.DataOffset != DataOffset:
		return fh, ih, fmt.Errorf("%w: data offset %d", ErrFormat, fh.DataOffset)
	case ih.HeaderSize != InfoHeaderLen:
		return fh, ih, fmt.Errorf("%w: DIB header size %d", ErrFormat, ih.HeaderSize)
	case ih.Planes != 1 || ih.BitsPerPixel != BitsPerPixel || ih.Compression != 0:
		return fh, ih, fmt.Errorf("%w: %d planes, %d bpp, compression %d", ErrFormat, ih.Planes, ih.BitsPerPixel, ih.Compression)
	case ih.ColorsUsed != NumColors:
		return fh, ih, fmt.Errorf("%w: %d colors", ErrFormat, ih.ColorsUsed)
	}
	if msg := dimensionsProblem(int(ih.Width), int(ih.Height)); msg != "" {
		return fh, ih, fmt.Errorf("%w: %s", ErrFormat, msg)
	}
	if want := DataOffset + int(ih.Height)*int(ih.Width)/2; int(fh.FileSize) != want {
		return fh, ih, fmt.Errorf("%w: file size %d, want %d", ErrFormat, fh.FileSize, want)
	}
	p := b[FileHeaderLen+InfoHeaderLen : DataOffset]
	for i, c := range grayPalette {
		if p[4*i] != c.R || p[4*i+1] != c.G || p[4*i+2] != c.B || p[4*i+3] != c.Reserved {
			return fh, ih, fmt.Errorf("%w: palette entry %d is % X", ErrFormat, i, p[4*i:4*i+4])
		}
	}
	return fh, ih, nil
}
