package jobs

// Rect is the output frame of a job and, for crops, its origin in the input.
type Rect struct {
	Width  int
	Height int
	X      int
	Y      int
}

// Geometry evaluates the variant's filter for an input of width x height the
// way ffmpeg's expression evaluator does for non-negative values: floor for
// the crop width, truncating division for the centred origin.
func Geometry(v Variant, width, height int) Rect {
	if width <= 0 || height <= 0 {
		return Rect{}
	}
	cropWidth := height * 9 / 16
	switch v {
	case LeftCrop:
		return Rect{Width: cropWidth, Height: height}
	case MidCrop:
		return Rect{Width: cropWidth, Height: height, X: (width - cropWidth) / 2}
	case RightCrop:
		return Rect{Width: cropWidth, Height: height, X: width - cropWidth}
	case RotateLeft:
		return Rect{Width: height, Height: width}
	default:
		return Rect{}
	}
}

// FitsInput reports whether a crop of the variant stays inside the frame.
// Inputs already narrower than 9:16 cannot be cropped and ffmpeg rejects them.
func FitsInput(v Variant, width, height int) bool {
	if !v.IsCrop() {
		return width > 0 && height > 0
	}
	r := Geometry(v, width, height)
	return r.Width > 0 && r.X >= 0 && r.X+r.Width <= width
}
