// Package avatar draws the initials fallback for users without an avatar URL.
package avatar

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image/color"
	"image/png"
	"strings"
	"sync"
	"unicode"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gobold"
)

const (
	DefaultSize = 128
	maxInitials = 2
	maxCached   = 4096
)

// Background palette; the initials pick one deterministically.
var palette = []color.RGBA{
	{0x90, 0xca, 0xf9, 0xff},
	{0xf4, 0x8f, 0xb1, 0xff},
	{0xa5, 0xd6, 0xa7, 0xff},
	{0xff, 0xcc, 0x80, 0xff},
	{0xce, 0x93, 0xd8, 0xff},
	{0x80, 0xcb, 0xc4, 0xff},
}

// Renderer renders and caches initials avatars.
type Renderer struct {
	size int
	font *truetype.Font

	mu    sync.Mutex
	cache map[string][]byte
}

func NewRenderer(size int) (*Renderer, error) {
	if size <= 0 {
		size = DefaultSize
	}

	f, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	return &Renderer{
		size:  size,
		font:  f,
		cache: make(map[string][]byte),
	}, nil
}

// Normalize keeps up to two letters or digits, upper-cased. An empty result
// becomes "?".
func Normalize(initials string) string {
	var b strings.Builder
	n := 0
	for _, r := range initials {
		if n == maxInitials {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
			n++
		}
	}
	if n == 0 {
		return "?"
	}
	return b.String()
}

// PNG returns the encoded avatar for initials.
func (r *Renderer) PNG(initials string) ([]byte, error) {
	initials = Normalize(initials)

	r.mu.Lock()
	if cached, ok := r.cache[initials]; ok {
		r.mu.Unlock()
		return cached, nil
	}
	r.mu.Unlock()

	img, err := r.draw(initials)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if len(r.cache) < maxCached {
		r.cache[initials] = img
	}
	r.mu.Unlock()

	return img, nil
}

func (r *Renderer) draw(initials string) ([]byte, error) {
	size := float64(r.size)
	dc := gg.NewContext(r.size, r.size)

	dc.SetColor(background(initials))
	dc.DrawCircle(size/2, size/2, size/2)
	dc.Fill()

	face := truetype.NewFace(r.font, &truetype.Options{Size: size * 0.4})
	dc.SetFontFace(face)
	dc.SetRGB255(0x12, 0x12, 0x12)
	dc.DrawStringAnchored(initials, size/2, size/2, 0.5, 0.35)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("encode avatar: %w", err)
	}
	return buf.Bytes(), nil
}

func background(initials string) color.RGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(initials))
	return palette[h.Sum32()%uint32(len(palette))]
}
