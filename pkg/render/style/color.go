package style

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/venn/pkg/core/subsets"
)

// SetColor returns the color of set i. Colors repeat when there are fewer
// colors than sets.
func (c Config) SetColor(i int) colorful.Color {
	return parse(c.SetColors[i%len(c.SetColors)])
}

// RegionColor returns the fill of region k: the Lab-space average of the
// colors of its member sets.
func (c Config) RegionColor(k subsets.Key) colorful.Color {
	var (
		acc colorful.Color
		n   int
	)
	for i := 0; i < len(k); i++ {
		if !k.Contains(i) {
			continue
		}
		n++
		if n == 1 {
			acc = c.SetColor(i)
			continue
		}
		acc = acc.BlendLab(c.SetColor(i), 1/float64(n)).Clamped()
	}
	return acc
}

// RegionHex returns [Config.RegionColor] as "#rrggbb".
func (c Config) RegionHex(k subsets.Key) string { return c.RegionColor(k).Hex() }

// NRGBA converts a hex color and an opacity to an image color. Invalid hex
// strings yield black.
func NRGBA(hex string, alpha float64) color.NRGBA {
	return toNRGBA(parse(hex), alpha)
}

func toNRGBA(col colorful.Color, alpha float64) color.NRGBA {
	r, g, b := col.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(255 * math.Max(0, math.Min(1, alpha))))}
}

// RegionNRGBA returns the fill of region k with the configured opacity.
func (c Config) RegionNRGBA(k subsets.Key) color.NRGBA {
	return toNRGBA(c.RegionColor(k), c.Alpha)
}

func parse(hex string) colorful.Color {
	col, err := colorful.Hex(expand(hex))
	if err != nil {
		return colorful.Color{}
	}
	return col
}

// expand turns "#rgb" into "#rrggbb".
func expand(hex string) string {
	if len(hex) != 4 || hex[0] != '#' {
		return hex
	}
	return string([]byte{'#', hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
}
