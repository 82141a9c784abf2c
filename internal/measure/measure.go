// Package measure reports rendered label widths using the Go Mono face.
package measure

import (
	"fmt"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	DefaultCacheSize = 4096
	DefaultDPI       = 72
)

type key struct {
	text string
	size float64
}

// Text measures strings with a truetype face per font size. Results are
// cached by (text, size).
type Text struct {
	ttf   *truetype.Font
	dpi   float64
	cache *lru.Cache[key, float64]

	mu    sync.Mutex
	faces map[float64]font.Face
	dc    *gg.Context
}

// New parses the embedded Go Mono font. cacheSize <= 0 uses DefaultCacheSize.
func New(cacheSize int) (*Text, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	cache, err := lru.New[key, float64](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create measure cache: %w", err)
	}
	return &Text{
		ttf:   ttf,
		dpi:   DefaultDPI,
		cache: cache,
		faces: make(map[float64]font.Face),
		dc:    gg.NewContext(1, 1),
	}, nil
}

// Face returns the face used for a font size, creating it on first use.
func (t *Text) Face(size float64) font.Face {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.face(size)
}

func (t *Text) face(size float64) font.Face {
	if f, ok := t.faces[size]; ok {
		return f
	}
	f := t.NewFace(size)
	t.faces[size] = f
	return f
}

// NewFace returns a face that is not shared with measurement, for painting
// from another goroutine.
func (t *Text) NewFace(size float64) font.Face {
	return truetype.NewFace(t.ttf, &truetype.Options{
		Size:    size,
		DPI:     t.dpi,
		Hinting: font.HintingFull,
	})
}

// Measure returns the advance width of text in pixels.
func (t *Text) Measure(text string, size float64) (float64, error) {
	if size <= 0 {
		return 0, fmt.Errorf("invalid font size %v", size)
	}
	k := key{text: text, size: size}
	if w, ok := t.cache.Get(k); ok {
		return w, nil
	}

	t.mu.Lock()
	t.dc.SetFontFace(t.face(size))
	w, _ := t.dc.MeasureString(text)
	t.mu.Unlock()

	t.cache.Add(k, w)
	return w, nil
}

// Cached is the number of memoized measurements.
func (t *Text) Cached() int { return t.cache.Len() }
