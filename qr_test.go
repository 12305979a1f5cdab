package main

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPrintJoinQR(t *testing.T) {
	const url = "http://192.168.1.20:8080"
	var buf bytes.Buffer
	if err := printJoinQR(&buf, url); err != nil {
		t.Fatalf("printJoinQR: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) < 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	if last := lines[len(lines)-1]; last != url {
		t.Fatalf("last line = %q, want %q", last, url)
	}

	code := lines[:len(lines)-1]
	width := utf8.RuneCountInString(code[0])
	if width == 0 {
		t.Fatal("empty QR row")
	}
	for i, l := range code {
		if n := utf8.RuneCountInString(l); n != width {
			t.Fatalf("row %d width = %d, want %d", i, n, width)
		}
	}
	if len(code) != (width+1)/2 {
		t.Fatalf("rows = %d, want %d for a square code", len(code), (width+1)/2)
	}
}
