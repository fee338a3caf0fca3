package main

import (
	"bytes"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flavioheleno/bmp4"
	"github.com/flavioheleno/bmp4/image4bit"
)

func run(t *testing.T, stdin []byte, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(bytes.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func TestEncodeCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "fb.raw")
	out := filepath.Join(dir, "fb.bmp")
	if err := os.WriteFile(in, []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF}, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, nil, "encode", "--width", "8", "--height", "2", "-i", in, "-o", out); err != nil {
		t.Fatalf("encode error = %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := bmp4.Encode(8, 2, []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF})
	if !bytes.Equal(data, want) {
		t.Errorf("output = % X, want % X", data, want)
	}
}

func TestEncodeCommandStdio(t *testing.T) {
	out, err := run(t, make([]byte, 8), "encode", "--width", "8", "--height", "2")
	if err != nil {
		t.Fatalf("encode error = %v", err)
	}
	if len(out) != 126 || !strings.HasPrefix(out, "BM") {
		t.Errorf("stdout is %d bytes starting %q, want a 126 byte BMP", len(out), out[:2])
	}
}

func TestEncodeCommandErrors(t *testing.T) {
	if _, err := run(t, make([]byte, 8), "encode", "--width", "7", "--height", "2"); !errors.Is(err, bmp4.ErrInvalidDimensions) {
		t.Errorf("odd width error = %v, want ErrInvalidDimensions", err)
	}
	if _, err := run(t, make([]byte, 5), "encode", "--width", "8", "--height", "2"); !errors.Is(err, bmp4.ErrBufferSizeMismatch) {
		t.Errorf("short input error = %v, want ErrBufferSizeMismatch", err)
	}
}

func TestPatternCommandAndInspect(t *testing.T) {
	for _, kind := range patternNames() {
		t.Run(kind, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), kind+".bmp")
			if _, err := run(t, nil, "pattern", "--kind", kind, "--width", "32", "--height", "16", "-o", file); err != nil {
				t.Fatalf("pattern error = %v", err)
			}
			out, err := run(t, nil, "inspect", file)
			if err != nil {
				t.Fatalf("inspect error = %v", err)
			}
			if !strings.Contains(out, "size:       32x16") || !strings.Contains(out, "file size:  374 bytes") {
				t.Errorf("inspect output:\n%s", out)
			}
		})
	}
}

func TestPatternUnknown(t *testing.T) {
	if _, err := run(t, nil, "pattern", "--kind", "plaid"); err == nil || !strings.Contains(err.Error(), "unknown pattern") {
		t.Errorf("error = %v, want unknown pattern", err)
	}
}

func TestInspectRejectsForeignFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "x.bmp")
	data, _ := bmp4.Encode(8, 2, make([]byte, 8))
	data[28] = 8 // 8 bpp
	if err := os.WriteFile(file, data, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, nil, "inspect", file); !errors.Is(err, bmp4.ErrFormat) {
		t.Errorf("inspect error = %v, want ErrFormat", err)
	}

	data, _ = bmp4.Encode(8, 2, make([]byte, 8))
	if err := os.WriteFile(file, data[:120], 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, nil, "inspect", file); !errors.Is(err, bmp4.ErrFormat) {
		t.Errorf("truncated inspect error = %v, want ErrFormat", err)
	}
}

func TestInspectLevels(t *testing.T) {
	file := filepath.Join(t.TempDir(), "x.bmp")
	data, _ := bmp4.Encode(8, 1, []byte{0xFF, 0xFF, 0x00, 0x50})
	if err := os.WriteFile(file, data, 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, nil, "inspect", file)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"   0 #000000 3\n", "   5 #555555 1\n", "  15 #ffffff 4\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q:\n%s", want, out)
		}
	}
}

func TestPatterns(t *testing.T) {
	img := image4bit.NewHorizontalNibble(image.Rect(0, 0, 32, 16))

	drawGradient(img)
	if img.Gray4At(0, 0).Y != 0 || img.Gray4At(31, 15).Y != 15 || img.Gray4At(16, 7).Y != 8 {
		t.Errorf("gradient levels %d %d %d", img.Gray4At(0, 0).Y, img.Gray4At(31, 15).Y, img.Gray4At(16, 7).Y)
	}

	drawChecker(img)
	if img.Gray4At(0, 0).Y != 15 || img.Gray4At(8, 0).Y != 0 || img.Gray4At(8, 8).Y != 15 {
		t.Error("checker squares are not 8 pixels wide")
	}

	drawBars(img)
	if img.Gray4At(0, 0).Y != 0 || img.Gray4At(31, 0).Y != 15 {
		t.Error("bars do not span all levels")
	}
	// Bottom quarter: rows 12..15 go from white to dark.
	if img.Gray4At(0, 12).Y != 15 || img.Gray4At(0, 15).Y != 3 {
		t.Errorf("bottom band levels %d, %d", img.Gray4At(0, 12).Y, img.Gray4At(0, 15).Y)
	}
}
