package converter

import "math"

// Layout describes the geometry of a placement: the source is scaled to Scaled,
// then a Crop sized window is cut out of it at the placement anchor.
type Layout struct {
	Scaled Dimensions
	Crop   Dimensions
}

func (l Layout) Output() Dimensions {
	return l.Crop
}

func Arrange(src, target Dimensions, p Placement) Layout {
	if src.Width <= 0 || src.Height <= 0 || target.Width <= 0 || target.Height <= 0 {
		return Layout{Scaled: src, Crop: src}
	}

	sw, sh := float64(src.Width), float64(src.Height)
	tw, th := float64(target.Width), float64(target.Height)

	if p.Fit == FitCover {
		factor := math.Max(tw/sw, th/sh)
		if factor > 1 && !p.Enlarge {
			return Layout{
				Scaled: src,
				Crop: Dimensions{
					Width:  min(src.Width, target.Width),
					Height: min(src.Height, target.Height),
				},
			}
		}

		scaled := Dimensions{
			Width:  max(target.Width, scale(sw, factor)),
			Height: max(target.Height, scale(sh, factor)),
		}
		return Layout{Scaled: scaled, Crop: target}
	}

	if src.Width <= target.Width && src.Height <= target.Height && !p.Enlarge {
		return Layout{Scaled: src, Crop: src}
	}

	factor := math.Min(tw/sw, th/sh)
	scaled := Dimensions{
		Width:  min(target.Width, scale(sw, factor)),
		Height: min(target.Height, scale(sh, factor)),
	}
	return Layout{Scaled: scaled, Crop: scaled}
}

func scale(v, factor float64) int {
	return max(1, int(math.Round(v*factor)))
}
