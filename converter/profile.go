package converter

import "math"

const (
	OutputWidth = 1920
	AspectRatio = 16.0 / 9.0

	Saturation = 1.5
	Brightness = 1.1
	Hue        = 10

	JPEGQuality = 80

	// MaxInputPixels caps width*height of a source image before it is decoded.
	MaxInputPixels = 0x3FFF * 0x3FFF
)

type Dimensions struct {
	Width  int
	Height int
}

func (d Dimensions) Pixels() int {
	return d.Width * d.Height
}

// Tone is the color pass applied after placement. Saturation and Brightness are
// multipliers, Hue is a rotation in degrees.
type Tone struct {
	Saturation float64
	Brightness float64
	Hue        float64
	Normalize  bool
}

type Profile struct {
	Width       int
	AspectRatio float64
	Tone        Tone
	Quality     int
}

var DefaultProfile = Profile{
	Width:       OutputWidth,
	AspectRatio: AspectRatio,
	Tone: Tone{
		Saturation: Saturation,
		Brightness: Brightness,
		Hue:        Hue,
		Normalize:  true,
	},
	Quality: JPEGQuality,
}

func (p Profile) Target() Dimensions {
	return Dimensions{
		Width:  p.Width,
		Height: int(math.Round(float64(p.Width) / p.AspectRatio)),
	}
}

// Plan returns everything a processor needs to render option. Only the
// placement depends on the option.
func (p Profile) Plan(option Option) Plan {
	return Plan{
		Option:    option,
		Target:    p.Target(),
		Placement: PlacementFor(option),
		Tone:      p.Tone,
		Quality:   p.Quality,
	}
}
