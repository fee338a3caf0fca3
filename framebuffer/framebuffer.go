// Package framebuffer holds the live 4-bit grayscale image that is served as
// a BMP. Updates and reads are serialized, so an encoded file always comes
// from a consistent snapshot.
package framebuffer

import (
	"fmt"
	"image"
	"image/draw"
	"sync"

	"github.com/flavioheleno/bmp4"
	"github.com/flavioheleno/bmp4/image4bit"
)

// Framebuffer is a lock-guarded image4bit.HorizontalNibble.
type Framebuffer struct {
	enc *bmp4.Encoder

	mu      sync.RWMutex
	img     *image4bit.HorizontalNibble
	version uint64
}

// New allocates a black width×height framebuffer. The dimensions are checked
// with bmp4.New, so the error wraps bmp4.ErrInvalidDimensions.
func New(width, height int) (*Framebuffer, error) {
	enc, err := bmp4.New(width, height)
	if err != nil {
		return nil, err
	}
	return &Framebuffer{
		enc: enc,
		img: image4bit.NewHorizontalNibble(image.Rect(0, 0, width, height)),
	}, nil
}

// Bounds returns the framebuffer bounds.
func (f *Framebuffer) Bounds() image.Rectangle {
	return f.img.Rect
}

// Encoder returns the encoder matching the framebuffer size.
func (f *Framebuffer) Encoder() *bmp4.Encoder {
	return f.enc
}

// Update runs fn with exclusive access to the image. fn must not retain img.
func (f *Framebuffer) Update(fn func(img *image4bit.HorizontalNibble)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f.img)
	f.version++
}

// Draw draws src onto the framebuffer, like draw.Draw with draw.Src.
func (f *Framebuffer) Draw(dst image.Rectangle, src image.Image, sp image.Point) {
	f.Update(func(img *image4bit.HorizontalNibble) {
		draw.Draw(img, dst, src, sp, draw.Src)
	})
}

// Load replaces the whole image with packed rows. It fails with
// bmp4.ErrBufferSizeMismatch if pixels has the wrong length.
func (f *Framebuffer) Load(pixels []byte) error {
	if len(pixels) != f.enc.PixelBytes() {
		return fmt.Errorf("%w: got %d bytes, want %d", bmp4.ErrBufferSizeMismatch, len(pixels), f.enc.PixelBytes())
	}
	f.Update(func(img *image4bit.HorizontalNibble) {
		copy(img.Pix, pixels)
	})
	return nil
}

// Snapshot returns a copy of the packed rows.
func (f *Framebuffer) Snapshot() []byte {
	b, _ := f.SnapshotVersion()
	return b
}

// SnapshotVersion returns a copy of the packed rows and the version they
// belong to.
func (f *Framebuffer) SnapshotVersion() ([]byte, uint64) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]byte(nil), f.img.Pix...), f.version
}

// Version returns a counter incremented by every update.
func (f *Framebuffer) Version() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.version
}

// EncodeBMP encodes the current contents under the read lock.
func (f *Framebuffer) EncodeBMP() ([]byte, error) {
	dst := make([]byte, 0, f.enc.FileSize())
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.enc.AppendEncode(dst, f.img.Pix)
}
