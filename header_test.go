package bmp4

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"
)

func TestHeaderMarshalBinary(t *testing.T) {
	fh, err := newFileHeader(4).MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte{'B', 'M', 122, 0, 0, 0, 0, 0, 0, 0, 118, 0, 0, 0}; !bytes.Equal(fh, want) {
		t.Errorf("FileHeader = % X, want % X", fh, want)
	}

	ih, err := newInfoHeader(600, 800).MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if len(ih) != InfoHeaderLen {
		t.Fatalf("len(InfoHeader) = %d, want %d", len(ih), InfoHeaderLen)
	}
	want := []byte{
		40, 0, 0, 0,
		0x58, 0x02, 0, 0, // 600
		0x20, 0x03, 0, 0, // 800
		1, 0,
		4, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0x58, 0x02, 0, 0,
		0x20, 0x03, 0, 0,
		16, 0, 0, 0,
		0, 0, 0, 0,
	}
	if !bytes.Equal(ih, want) {
		t.Errorf("InfoHeader = % X, want % X", ih, want)
	}
}

func TestParseHeader(t *testing.T) {
	data, err := Encode(600, 800, make([]byte, 300*800))
	if err != nil {
		t.Fatal(err)
	}
	fh, ih, err := ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader() error = %v", err)
	}
	if fh != newFileHeader(300*800) {
		t.Errorf("FileHeader = %+v", fh)
	}
	if ih != newInfoHeader(600, 800) {
		t.Errorf("InfoHeader = %+v", ih)
	}
}

func TestParseHeaderErrors(t *testing.T) {
	valid, _ := Encode(8, 2, make([]byte, 8))

	tests := []struct {
		name   string
		mutate func(b []byte) []byte
	}{
		{"truncated", func(b []byte) []byte { return b[:100] }},
		{"signature", func(b []byte) []byte { b[0] = 'X'; return b }},
		{"data offset", func(b []byte) []byte { b[10] = 54; return b }},
		{"dib size", func(b []byte) []byte { b[14] = 108; return b }},
		{"planes", func(b []byte) []byte { b[26] = 2; return b }},
		{"bpp", func(b []byte) []byte { b[28] = 8; return b }},
		{"compression", func(b []byte) []byte { b[30] = 2; return b }},
		{"colors", func(b []byte) []byte { b[46] = 15; return b }},
		{"unaligned width", func(b []byte) []byte { b[18] = 6; return b }},
		{"file size", func(b []byte) []byte { b[2] = 200; return b }},
		{"palette", func(b []byte) []byte { b[54+4*3] = 0x30; return b }},
		{"palette reserved", func(b []byte) []byte { b[57] = 0xFF; return b }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.mutate(append([]byte(nil), valid...))
			if _, _, err := ParseHeader(b); !errors.Is(err, ErrFormat) {
				t.Errorf("ParseHeader() error = %v, want ErrFormat", err)
			}
		})
	}
}

func TestParseHeaderDimensionMessage(t *testing.T) {
	b, _ := Encode(8, 2, make([]byte, 8))
	binary.LittleEndian.PutUint32(b[22:], 0xFFFFFFFF) // height -1

	_, _, err := ParseHeader(b)
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("ParseHeader() error = %v, want ErrFormat", err)
	}
	want := "bmp4: invalid format: 8x-1, width and height must be positive"
	if err.Error() != want {
		t.Errorf("ParseHeader() error = %q, want %q", err.Error(), want)
	}
	if n := strings.Count(err.Error(), "bmp4:"); n != 1 {
		t.Errorf("error has %d package prefixes, want 1", n)
	}
}
