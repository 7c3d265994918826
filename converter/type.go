package converter

// Option selects how the source is placed into the 16:9 target.
type Option struct {
	s string
}

var (
	Fill   = Option{"fill"}
	Top    = Option{"top"}
	Bottom = Option{"bottom"}
	Fit    = Option{"fit"}
)

func (o Option) String() string {
	if o.s == "" {
		return Fit.s
	}
	return o.s
}

// Parse resolves s to an option. Unknown values resolve to Fit with ok == false.
func Parse(s string) (o Option, ok bool) {
	switch s {
	case Fill.s:
		return Fill, true
	case Top.s:
		return Top, true
	case Bottom.s:
		return Bottom, true
	case Fit.s:
		return Fit, true
	}

	return Fit, false
}

func MakeFromString(s string) Option {
	o, _ := Parse(s)
	return o
}

func (o *Option) UnmarshalText(text []byte) error {
	*o = MakeFromString(string(text))
	return nil
}
