package imagegen

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"strings"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	brandPink  = color.RGBA{R: 0xec, G: 0x48, B: 0x99, A: 0xff}
	brandGreen = color.RGBA{R: 0x2d, G: 0x5f, B: 0x3f, A: 0xff}
	white      = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	shadow     = color.RGBA{A: 0xd0}
)

// Details is the text drawn over a generated photo.
type Details struct {
	Name       string
	SubSubject string
	Date       string // YYYY-MM-DD
	Time       string
}

// Overlay composites the event details and the logo mark onto a PNG or JPEG
// and returns a PNG.
func Overlay(src []byte, d Details) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("decoding generated image: %w", err)
	}

	b := img.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(canvas, canvas.Bounds(), img, b.Min, draw.Src)

	if strings.TrimSpace(d.Name) != "" {
		drawTitle(canvas, d)
	}
	if line := FormatDateTime(d.Date, d.Time); line != "" {
		drawBottomBar(canvas, line)
	}
	drawLogo(canvas)

	var out bytes.Buffer
	if err := png.Encode(&out, canvas); err != nil {
		return nil, fmt.Errorf("encoding overlay: %w", err)
	}
	return out.Bytes(), nil
}

// FormatDateTime renders the bottom bar line. With both parts it reads
// "JAN 2, 2006  •  17:00"; a lone date uses the long month name.
func FormatDateTime(date, clock string) string {
	date, clock = strings.TrimSpace(date), strings.TrimSpace(clock)

	layout := "January 2, 2006"
	if clock != "" {
		layout = "Jan 2, 2006"
	}
	if date != "" {
		if t, err := time.Parse(time.DateOnly, date); err == nil {
			date = strings.ToUpper(t.Format(layout))
		}
	}

	switch {
	case date != "" && clock != "":
		return date + "  •  " + clock
	case date != "":
		return date
	default:
		return clock
	}
}

func drawTitle(dst *image.RGBA, d Details) {
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	shade(dst, 0, h/2, func(f float64) float64 {
		if f < 0.6 {
			return 0.85 - (0.30 * f / 0.6)
		}
		return 0.55 * (1 - (f-0.6)/0.4)
	})

	words := strings.Fields(d.Name)
	y := int(float64(h) * 0.06)

	decorative := int(float64(w) * 0.08)
	drawCentered(dst, words[0], white, y, decorative)
	y += decorative * 13 / 10

	if len(words) > 1 {
		size := int(float64(w) * 0.14)
		for _, line := range wrap(strings.ToUpper(strings.Join(words[1:], " ")), size, int(float64(w)*0.9)) {
			drawCentered(dst, line, brandPink, y, size)
			y += size * 11 / 10
		}
		y += int(float64(h) * 0.02)
	}

	if sub := strings.TrimSpace(d.SubSubject); sub != "" {
		drawCentered(dst, strings.ToUpper(sub), white, y, int(float64(w)*0.04))
	}
}

func drawBottomBar(dst *image.RGBA, line string) {
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	bar := int(float64(h) * 0.08)
	shade(dst, h-bar, h, func(f float64) float64 {
		if f < 0.3 {
			return 0.75 * f / 0.3
		}
		return 0.75 + 0.10*(f-0.3)/0.7
	})

	size := int(float64(w) * 0.04)
	drawCentered(dst, line, white, h-bar/2-size/2, size)
}

// drawLogo places the P&P mark in the bottom-right corner at 12% of the width.
func drawLogo(dst *image.RGBA) {
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	size := int(float64(w) * 0.12)
	pad := int(float64(w) * 0.025)

	const mark = "P&P"
	glyphs := textWidth(mark)
	height := size * glyphHeight / glyphs
	if height < 1 {
		return
	}
	x := w - size - pad
	y := h - height - pad
	drawText(dst, mark, brandGreen, x+1, y+1, height)
	drawText(dst, mark, white, x, y, height)
}

// shade darkens rows [top, bottom) with black at the alpha returned by
// alpha(f), f running from 0 at top to 1 at bottom.
func shade(dst *image.RGBA, top, bottom int, alpha func(f float64) float64) {
	span := bottom - top
	if span <= 0 {
		return
	}
	width := dst.Bounds().Dx()
	for y := top; y < bottom; y++ {
		a := alpha(float64(y-top) / float64(span))
		if a <= 0 {
			continue
		}
		band := image.NewUniform(color.RGBA{A: uint8(a * 255)})
		draw.Draw(dst, image.Rect(0, y, width, y+1), band, image.Point{}, draw.Over)
	}
}

const glyphHeight = 13

func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}

// wrap breaks s into lines no wider than maxWidth when drawn at size pixels.
func wrap(s string, size, maxWidth int) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(s) {
		candidate := strings.TrimSpace(line + " " + word)
		if line != "" && scaledWidth(candidate, size) > maxWidth {
			lines = append(lines, line)
			line = word
			continue
		}
		line = candidate
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

func scaledWidth(s string, size int) int {
	return textWidth(printable(s)) * size / glyphHeight
}

func drawCentered(dst *image.RGBA, s string, c color.Color, top, size int) {
	s = printable(s)
	x := (dst.Bounds().Dx() - scaledWidth(s, size)) / 2
	offset := size / 12
	if offset < 1 {
		offset = 1
	}
	drawText(dst, s, shadow, x+offset, top+offset, size)
	drawText(dst, s, c, x, top, size)
}

// drawText renders s with the bitmap face and scales it to size pixels tall.
func drawText(dst *image.RGBA, s string, c color.Color, x, top, size int) {
	tw := textWidth(s)
	if tw == 0 || size <= 0 {
		return
	}
	glyphs := image.NewRGBA(image.Rect(0, 0, tw, glyphHeight))
	d := font.Drawer{
		Dst:  glyphs,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(0, basicfont.Face7x13.Ascent),
	}
	d.DrawString(s)

	target := image.Rect(x, top, x+tw*size/glyphHeight, top+size)
	xdraw.NearestNeighbor.Scale(dst, target, glyphs, glyphs.Bounds(), xdraw.Over, nil)
}

// printable maps runes the bitmap face lacks onto ASCII stand-ins.
func printable(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '•':
			return '*'
		case r < 0x20 || r > 0x7e:
			return '?'
		}
		return r
	}, s)
}
