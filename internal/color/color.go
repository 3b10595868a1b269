// Package color parses the #RRGGBB colours accepted by the formatting tools.
package color

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB holds channel intensities in [0, 1], the scale both the Docs and
// Sheets APIs use.
type RGB struct {
	Red   float64
	Green float64
	Blue  float64
}

// ParseHex parses "#RRGGBB" or "RRGGBB".
func ParseHex(s string) (RGB, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("invalid color %q: expected #RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid color %q: expected #RRGGBB", s)
	}
	return RGB{
		Red:   float64((v>>16)&0xff) / 255,
		Green: float64((v>>8)&0xff) / 255,
		Blue:  float64(v&0xff) / 255,
	}, nil
}
