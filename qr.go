package main

import (
	"fmt"
	"io"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// printJoinQR writes url as a QR code drawn with half-block characters,
// two modules per text row. Light modules are drawn so the code reads on a
// dark terminal.
func printJoinQR(w io.Writer, url string) error {
	qr, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("qr encode: %w", err)
	}
	bitmap := qr.Bitmap() // true = dark module, quiet zone included

	var b strings.Builder
	for y := 0; y < len(bitmap); y += 2 {
		for x := range bitmap[y] {
			top := !bitmap[y][x]
			bottom := y+1 < len(bitmap) && !bitmap[y+1][x]
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		b.WriteByte('\n')
	}
	b.WriteString(url)
	b.WriteByte('\n')
	_, err = io.WriteString(w, b.String())
	return err
}
