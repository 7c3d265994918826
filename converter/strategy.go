package converter

type FitMode struct {
	s string
}

var (
	// FitCover fills the whole target and crops the overflow.
	FitCover = FitMode{"cover"}
	// FitInside scales the source to lie within the target without cropping.
	FitInside = FitMode{"inside"}
)

func (f FitMode) String() string {
	return f.s
}

type Anchor struct {
	s string
}

var (
	AnchorCenter  = Anchor{"center"}
	AnchorTop     = Anchor{"top"}
	AnchorBottom  = Anchor{"bottom"}
	AnchorEntropy = Anchor{"entropy"}
)

func (a Anchor) String() string {
	return a.s
}

type Placement struct {
	Fit     FitMode
	Anchor  Anchor
	Enlarge bool
}

// Anchors only pick a crop window, so the entropy anchor of Fit has no effect
// while Fit is an inside placement.
var placements = map[Option]Placement{
	Fill:   {Fit: FitCover, Anchor: AnchorCenter},
	Top:    {Fit: FitCover, Anchor: AnchorTop},
	Bottom: {Fit: FitCover, Anchor: AnchorBottom},
	Fit:    {Fit: FitInside, Anchor: AnchorEntropy},
}

func PlacementFor(option Option) Placement {
	if p, ok := placements[option]; ok {
		return p
	}
	return placements[Fit]
}

type Plan struct {
	Option    Option
	Target    Dimensions
	Placement Placement
	Tone      Tone
	Quality   int
}
