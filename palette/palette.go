// Package palette holds the fixed colour tables for the two output images
// together with their pre-encoded PPM text cells.
//
// Every cell is exactly CellWidth bytes: three zero-padded decimal channels
// separated by spaces plus a trailing space ("180 000 030 "). Rows are built
// by concatenating cells and replacing the final space with a newline.
package palette

import (
	"fmt"
	"image/color"
)

// CellWidth is the encoded width of one pixel in an ASCII PPM row.
const CellWidth = 12

// Table sizes.
const (
	AttractorColors   = 10
	ConvergenceLevels = 50
)

// grayLevels is the convergence ramp, one level per clamped iteration count.
var grayLevels = [ConvergenceLevels]uint8{
	5, 10, 15, 20, 25, 30, 35, 40, 45, 50,
	56, 61, 66, 71, 76, 81, 86, 91, 96, 100,
	107, 112, 117, 122, 127, 132, 137, 142, 147, 153,
	158, 163, 168, 173, 178, 183, 188, 193, 198, 204,
	209, 214, 219, 224, 229, 234, 239, 244, 249, 255,
}

// Cell is one pre-encoded pixel.
type Cell [CellWidth]byte

var (
	attractorRGB = [AttractorColors]color.RGBA{
		{180, 0, 30, 255},
		{0, 180, 30, 255},
		{0, 30, 180, 255},
		{0, 190, 180, 255},
		{180, 0, 175, 255},
		{180, 255, 0, 255},
		{155, 170, 180, 255},
		{70, 50, 0, 255},
		{150, 60, 0, 255},
		{0, 150, 60, 255},
	}

	convergenceRGB [ConvergenceLevels]color.RGBA

	attractorCells   [AttractorColors]Cell
	convergenceCells [ConvergenceLevels]Cell
)

func init() {
	for k, v := range grayLevels {
		convergenceRGB[k] = color.RGBA{v, v, v, 255}
	}
	for i, c := range attractorRGB {
		attractorCells[i] = Encode(c)
	}
	for i, c := range convergenceRGB {
		convergenceCells[i] = Encode(c)
	}
}

// Encode renders c as a PPM text cell. Alpha is ignored.
func Encode(c color.RGBA) Cell {
	var cell Cell
	copy(cell[:], fmt.Sprintf("%03d %03d %03d ", c.R, c.G, c.B))
	return cell
}

// Attractor returns the colour for an attractor class. Out-of-range
// classes panic, as they indicate a corrupted map.
func Attractor(class uint8) color.RGBA {
	return attractorRGB[class]
}

// Convergence returns the gray level for a convergence count.
func Convergence(count uint8) color.RGBA {
	return convergenceRGB[count]
}

// AttractorCell returns the encoded cell for an attractor class.
func AttractorCell(class uint8) *Cell {
	return &attractorCells[class]
}

// ConvergenceCell returns the encoded cell for a convergence count.
func ConvergenceCell(count uint8) *Cell {
	return &convergenceCells[count]
}
