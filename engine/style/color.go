package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGBA color as used by the styling and view/command-list
// layers. Alpha 255 is fully opaque.
type Color struct {
	R, G, B, A uint8
}

// Black, White and Transparent are common style defaults.
var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Transparent = Color{0, 0, 0, 0}
)

func (c Color) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%.2f)", c.R, c.G, c.B, float64(c.A)/255)
}

// colorful converts c to a go-colorful Color (alpha dropped, since
// go-colorful models only RGB).
func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(cf colorful.Color, alpha uint8) Color {
	r, g, b := cf.Clamped().RGB255()
	return Color{r, g, b, alpha}
}

// ParseColor parses a color literal in one of the markup language's three
// forms: a hex literal ("#rrggbb"/"#rgb"), an "rgb(r,g,b)" functional
// literal or an "rgba(r,g,b,a)" functional literal.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s)
	case strings.HasPrefix(s, "rgba("):
		return parseFunctional(s, "rgba(", 4)
	case strings.HasPrefix(s, "rgb("):
		return parseFunctional(s, "rgb(", 3)
	}
	return Color{}, fmt.Errorf("style: unrecognized color literal %q", s)
}

func parseHexColor(s string) (Color, error) {
	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("style: invalid hex color %q: %w", s, err)
	}
	return fromColorful(cf, 255), nil
}

func parseFunctional(s, prefix string, nargs int) (Color, error) {
	if !strings.HasSuffix(s, ")") {
		return Color{}, fmt.Errorf("style: malformed color literal %q", s)
	}
	body := strings.TrimSuffix(strings.TrimPrefix(s, prefix), ")")
	parts := strings.Split(body, ",")
	if len(parts) != nargs {
		return Color{}, fmt.Errorf("style: %q expects %d components", prefix, nargs)
	}
	vals := make([]int, 3)
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return Color{}, fmt.Errorf("style: invalid color component %q: %w", parts[i], err)
		}
		vals[i] = n
	}
	alpha := 255
	if nargs == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return Color{}, fmt.Errorf("style: invalid alpha component %q: %w", parts[3], err)
		}
		alpha = int(a * 255)
	}
	return Color{uint8(clampByte(vals[0])), uint8(clampByte(vals[1])), uint8(clampByte(vals[2])), uint8(clampByte(alpha))}, nil
}

func clampByte(n int) int {
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}

// Tint blends c towards white by t (0 = unchanged, 1 = pure white),
// preserving c's alpha. Negative t shades towards black instead.
func Tint(c Color, t float64) Color {
	if t == 0 {
		return c
	}
	target := colorful.Color{R: 1, G: 1, B: 1}
	if t < 0 {
		target = colorful.Color{R: 0, G: 0, B: 0}
		t = -t
	}
	if t > 1 {
		t = 1
	}
	blended := c.colorful().BlendRgb(target, t)
	return fromColorful(blended, c.A)
}
