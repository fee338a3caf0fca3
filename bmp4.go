package bmp4

import (
	"errors"
	"fmt"
	"io"

	"github.com/flavioheleno/bmp4/image4bit"
)

// ContentType is the media type to serve encoded images with.
const ContentType = "image/bmp"

var (
	// ErrInvalidDimensions is returned when the width or height cannot be
	// encoded without row padding. It is a configuration error.
	ErrInvalidDimensions = errors.New("bmp4: invalid dimensions")

	// ErrBufferSizeMismatch is returned when the pixel buffer is not exactly
	// height*(width/2) bytes long.
	ErrBufferSizeMismatch = errors.New("bmp4: pixel buffer size mismatch")

	// ErrFormat is returned by ParseHeader for data this package did not write.
	ErrFormat = errors.New("bmp4: invalid format")
)

// Encoder produces BMP files of a fixed size. The header and palette are
// computed once by New; an Encoder is immutable and safe for concurrent use.
type Encoder struct {
	width, height int
	stride        int
	header        []byte // file header, info header and palette
}

func checkDimensions(width, height int) (stride int, err error) {
	if msg := dimensionsProblem(width, height); msg != "" {
		return 0, fmt.Errorf("%w: %s", ErrInvalidDimensions, msg)
	}
	return width / 2, nil
}

// dimensionsProblem describes why width×height cannot be encoded, or returns
// "" if it can.
func dimensionsProblem(width, height int) string {
	switch {
	case width <= 0 || height <= 0:
		return fmt.Sprintf("%dx%d, width and height must be positive", width, height)
	case width%2 != 0:
		return fmt.Sprintf("width %d must be even", width)
	case (width/2)%4 != 0:
		return fmt.Sprintf("width %d, width/2 must be a multiple of 4", width)
	case int64(height)*int64(width/2) > int64(^uint32(0))-DataOffset:
		return fmt.Sprintf("%dx%d does not fit in a BMP file", width, height)
	}
	return ""
}

// New returns an Encoder for width×height images.
//
// The width must be even and width/2 a multiple of 4, so that every packed
// row already ends on the 4-byte boundary BMP requires.
func New(width, height int) (*Encoder, error) {
	stride, err := checkDimensions(width, height)
	if err != nil {
		return nil, err
	}
	e := &Encoder{width: width, height: height, stride: stride}

	b := make([]byte, 0, DataOffset)
	b, _ = newFileHeader(e.PixelBytes()).AppendBinary(b)
	b, _ = newInfoHeader(width, height).AppendBinary(b)
	e.header = appendPalette(b)
	return e, nil
}

// MustNew is like New but panics if the dimensions are invalid.
func MustNew(width, height int) *Encoder {
	e, err := New(width, height)
	if err != nil {
		panic(err)
	}
	return e
}

// Width returns the image width in pixels.
func (e *Encoder) Width() int { return e.width }

// Height returns the image height in pixels.
func (e *Encoder) Height() int { return e.height }

// Stride returns the number of bytes per packed row.
func (e *Encoder) Stride() int { return e.stride }

// PixelBytes returns the required length of the pixel buffer.
func (e *Encoder) PixelBytes() int { return e.stride * e.height }

// FileSize returns the exact length of every encoded file.
func (e *Encoder) FileSize() int { return DataOffset + e.PixelBytes() }

// Header returns a copy of the DataOffset bytes that precede the pixels.
func (e *Encoder) Header() []byte {
	return append([]byte(nil), e.header...)
}

func (e *Encoder) check(pixels []byte) error {
	if len(pixels) != e.PixelBytes() {
		return fmt.Errorf("%w: got %d bytes, want %d for %dx%d", ErrBufferSizeMismatch, len(pixels), e.PixelBytes(), e.width, e.height)
	}
	return nil
}

// Encode returns a new BMP file holding pixels, which must be packed 4bpp
// rows, top row first. Rows are written in the order given: the file is not
// flipped to the usual bottom-up BMP order, so a standard reader shows the
// image upside down unless it honors the same convention.
func (e *Encoder) Encode(pixels []byte) ([]byte, error) {
	return e.AppendEncode(make([]byte, 0, e.FileSize()), pixels)
}

// AppendEncode appends the encoded file to dst. It allocates only if dst
// lacks FileSize() bytes of spare capacity.
func (e *Encoder) AppendEncode(dst, pixels []byte) ([]byte, error) {
	if err := e.check(pixels); err != nil {
		return dst, err
	}
	dst = append(dst, e.header...)
	return append(dst, pixels...), nil
}

// Write writes the encoded file to w without building it in memory.
func (e *Encoder) Write(w io.Writer, pixels []byte) error {
	if err := e.check(pixels); err != nil {
		return err
	}
	if _, err := w.Write(e.header); err != nil {
		return err
	}
	_, err := w.Write(pixels)
	return err
}

// Encode is a shorthand for New followed by Encoder.Encode.
func Encode(width, height int, pixels []byte) ([]byte, error) {
	e, err := New(width, height)
	if err != nil {
		return nil, err
	}
	return e.Encode(pixels)
}

// EncodeImage encodes m. Its bounds must satisfy the same constraints as New,
// and its Pix must be tightly packed (Stride == width/2).
func EncodeImage(m *image4bit.HorizontalNibble) ([]byte, error) {
	e, err := New(m.Rect.Dx(), m.Rect.Dy())
	if err != nil {
		return nil, err
	}
	if m.Stride != e.stride {
		return nil, fmt.Errorf("%w: stride %d, want %d", ErrBufferSizeMismatch, m.Stride, e.stride)
	}
	return e.Encode(m.Pix)
}
