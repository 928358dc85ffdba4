package jobs

import "fmt"

// Variant identifies one of the four outputs produced per source file.
type Variant int

const (
	LeftCrop Variant = iota
	MidCrop
	RightCrop
	RotateLeft
)

// Portrait crops keep the full input height and take floor(ih*9/16) columns.
const (
	cropWidthExpr = "floor(ih*9/16)"
	// OutputExt is the container extension of every output, whatever the input.
	OutputExt = "mp4"
)

// Variants returns all variants in execution order.
func Variants() []Variant {
	return []Variant{LeftCrop, MidCrop, RightCrop, RotateLeft}
}

// String returns the variant label used in logs and reports.
func (v Variant) String() string {
	switch v {
	case LeftCrop:
		return "left_9x16"
	case MidCrop:
		return "mid_9x16"
	case RightCrop:
		return "right_9x16"
	case RotateLeft:
		return "rotated_left_90"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// Suffix is appended to the base name to form the output file stem.
func (v Variant) Suffix() string {
	return "_" + v.String()
}

// IsCrop reports whether the variant writes into the portrait root.
func (v Variant) IsCrop() bool {
	return v == LeftCrop || v == MidCrop || v == RightCrop
}

// Filter returns the ffmpeg -vf expression for the variant.
func (v Variant) Filter() string {
	switch v {
	case LeftCrop:
		return "crop=" + cropWidthExpr + ":ih:0:0"
	case MidCrop:
		return "crop=" + cropWidthExpr + ":ih:(iw-" + cropWidthExpr + ")/2:0"
	case RightCrop:
		return "crop=" + cropWidthExpr + ":ih:(iw-" + cropWidthExpr + "):0"
	case RotateLeft:
		// transpose=2 rotates 90 degrees counter-clockwise without flipping.
		return "transpose=2"
	default:
		return ""
	}
}
