package diagram

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/AliArsal1512/clarifai-app/internal/astdoc"
)

type Theme int

const (
	ThemeLight Theme = iota
	ThemeDark
)

func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(s) {
	case "light", "":
		return ThemeLight, nil
	case "dark":
		return ThemeDark, nil
	default:
		return ThemeLight, fmt.Errorf("unknown theme %q", s)
	}
}

// darkFill is the per-channel multiplier applied to node fills in dark mode.
const darkFill = 0.6

// Palette holds hex colors for painting a diagram.
type Palette struct {
	Background string
	Text       string
	Link       string
	Border     string
	Indicator  string
	Tooltip    string
	fills      map[string]string
	fallback   string
}

var lightFills = map[string]string{
	astdoc.TypeRoot:       "#e8eaf6",
	astdoc.TypeClass:      "#bbdefb",
	astdoc.TypeFields:     "#fff3e0",
	astdoc.TypeField:      "#ffe0b2",
	astdoc.TypeMethods:    "#e8f5e9",
	astdoc.TypeMethod:     "#c8e6c9",
	astdoc.TypeSubclasses: "#f3e5f5",
	astdoc.TypeStatement:  "#eceff1",
}

// PaletteFor returns the colors of a theme.
func PaletteFor(t Theme) Palette {
	if t == ThemeDark {
		fills := make(map[string]string, len(lightFills))
		for typ, c := range lightFills {
			fills[typ] = Darken(c, darkFill)
		}
		return Palette{
			Background: "#121212",
			Text:       "#e0e0e0",
			Link:       "#9e9e9e",
			Border:     "#bdbdbd",
			Indicator:  "#ffb74d",
			Tooltip:    "#263238",
			fills:      fills,
			fallback:   Darken("#ffffff", darkFill),
		}
	}
	return Palette{
		Background: "#fafafa",
		Text:       "#212121",
		Link:       "#757575",
		Border:     "#424242",
		Indicator:  "#f57c00",
		Tooltip:    "#fffde7",
		fills:      lightFills,
		fallback:   "#ffffff",
	}
}

// Fill is the node fill for a node type.
func (p Palette) Fill(nodeType string) string {
	if c, ok := p.fills[nodeType]; ok {
		return c
	}
	return p.fallback
}

// Darken multiplies every channel of a #rrggbb color by factor. Inputs that
// do not parse are returned unchanged.
func Darken(hex string, factor float64) string {
	h := strings.TrimPrefix(hex, "#")
	if len(h) != 6 {
		return hex
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return hex
	}
	scale := func(c uint64) uint64 {
		s := float64(c) * factor
		if s < 0 {
			return 0
		}
		return uint64(math.Min(255, math.Round(s)))
	}
	r := scale((v >> 16) & 0xff)
	g := scale((v >> 8) & 0xff)
	b := scale(v & 0xff)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
