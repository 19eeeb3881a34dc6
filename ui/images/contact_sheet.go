package images

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

const sheetGap = 4

var sheetBackground = color.NRGBA{R: 0x20, G: 0x20, B: 0x24, A: 0xff}

// ContactSheet lays thumbs out on a grid of cell x cell squares, cols per row,
// newest last. Each thumb is fitted and centered in its cell. A nil thumb
// leaves its cell empty. It returns nil when thumbs is empty.
func ContactSheet(thumbs []image.Image, cell, cols int) *image.NRGBA {
	if len(thumbs) == 0 {
		return nil
	}
	if cell < 1 {
		cell = 1
	}
	if cols < 1 {
		cols = 1
	}
	if len(thumbs) < cols {
		cols = len(thumbs)
	}
	rows := (len(thumbs) + cols - 1) / cols
	w := cols*cell + (cols+1)*sheetGap
	h := rows*cell + (rows+1)*sheetGap
	sheet := imaging.New(w, h, sheetBackground)
	for i, t := range thumbs {
		if t == nil {
			continue
		}
		fitted := ScaleToFit(t, cell, cell)
		fb := fitted.Bounds()
		x := sheetGap + (i%cols)*(cell+sheetGap) + (cell-fb.Dx())/2
		y := sheetGap + (i/cols)*(cell+sheetGap) + (cell-fb.Dy())/2
		sheet = imaging.Paste(sheet, fitted, image.Pt(x, y))
	}
	return sheet
}
