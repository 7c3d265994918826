package format

import (
	"fmt"
	"widescreen/converter"
	"widescreen/shared/errs"
)

func checkPixels(d converter.Dimensions) error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: invalid dimensions %dx%d", errs.ErrDecode, d.Width, d.Height)
	}
	if d.Pixels() > converter.MaxInputPixels {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", errs.ErrDecode, d.Width, d.Height, converter.MaxInputPixels)
	}
	return nil
}
