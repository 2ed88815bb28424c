// Package grid provides the boolean raster shared by tiles, motifs and the
// stitched image, together with the eight-element orientation group they are
// all transformed by.
//
// # Bitmaps
//
// A [Bitmap] is a row-major slice of pixels with an explicit width and
// height. Pixel (x, y) lives at Pix[y*Width+x]. Bitmaps are treated as values:
// every transform returns a fresh bitmap and leaves its receiver untouched.
//
// # Orientations
//
// The orientation group is generated by two primitives, [Bitmap.Rotate90CCW]
// and [Bitmap.FlipHorizontal]. Composing zero to three rotations with zero or
// one preceding flip yields the eight members of the dihedral group of order
// eight, enumerated by [Orientation]:
//
//	Identity, Rot90, Rot180, Rot270,
//	Flip, FlipRot90, FlipRot180, FlipRot270
//
// [Bitmap.Orientations] precomputes all eight in that order.
package grid
