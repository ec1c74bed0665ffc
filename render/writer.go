package render

import (
	"fmt"
	"io"

	"newton_fractal/palette"
)

// RowObserver is notified of every row after it has been written.
// It runs on the writer goroutine and must not retain the slices.
type RowObserver interface {
	ObserveRow(row int, attractors, convergence []uint8)
}

// Header returns the PPM P3 header for a size x size image.
func Header(size int) string {
	return fmt.Sprintf("P3\n%d %d \n255\n", size, size)
}

// RowBytes is the encoded length of one image row, newline included.
func RowBytes(size int) int {
	return palette.CellWidth * size
}

// ImageWriter streams both maps as ASCII PPM images in ascending row order,
// waiting on RowProgress for each row before reading it.
type ImageWriter struct {
	attrOut  io.Writer
	convOut  io.Writer
	maps     *Maps
	progress *RowProgress
	observer RowObserver

	attrRow []byte
	convRow []byte
}

// NewImageWriter returns a writer for maps. observer may be nil.
func NewImageWriter(attrOut, convOut io.Writer, maps *Maps, progress *RowProgress, observer RowObserver) *ImageWriter {
	return &ImageWriter{
		attrOut:  attrOut,
		convOut:  convOut,
		maps:     maps,
		progress: progress,
		observer: observer,
		attrRow:  make([]byte, RowBytes(maps.Size)),
		convRow:  make([]byte, RowBytes(maps.Size)),
	}
}

// Run writes both headers and then every row. It returns on the first
// write error.
func (w *ImageWriter) Run() error {
	header := Header(w.maps.Size)
	if _, err := io.WriteString(w.attrOut, header); err != nil {
		return fmt.Errorf("write attractor header: %w", err)
	}
	if _, err := io.WriteString(w.convOut, header); err != nil {
		return fmt.Errorf("write convergence header: %w", err)
	}

	for row := 0; row < w.maps.Size; row++ {
		w.progress.Wait(row)

		attr := w.maps.AttractorRow(row)
		conv := w.maps.ConvergenceRow(row)
		encodeRow(w.attrRow, attr, palette.AttractorCell)
		encodeRow(w.convRow, conv, palette.ConvergenceCell)

		if _, err := w.attrOut.Write(w.attrRow); err != nil {
			return fmt.Errorf("write attractor row %d: %w", row, err)
		}
		if _, err := w.convOut.Write(w.convRow); err != nil {
			return fmt.Errorf("write convergence row %d: %w", row, err)
		}

		if w.observer != nil {
			w.observer.ObserveRow(row, attr, conv)
		}
	}
	return nil
}

// encodeRow fills dst with one cell per value and ends it with a newline.
func encodeRow(dst []byte, values []uint8, cell func(uint8) *palette.Cell) {
	for i, v := range values {
		copy(dst[i*palette.CellWidth:], cell(v)[:])
	}
	dst[len(dst)-1] = '\n'
}
