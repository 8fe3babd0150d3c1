package sim

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
)

// NewPathsPlot creates new plot of GP sample paths drawn over the time
// grid tvec: one line per column of paths.
// It returns error if either of the following conditions is met:
// * paths is nil or tvec length does not match its row count
// * gonum plot fails to be created
func NewPathsPlot(tvec []float64, paths mat.Matrix) (*plot.Plot, error) {
	if paths == nil {
		return nil, fmt.Errorf("invalid data supplied")
	}

	r, c := paths.Dims()
	if len(tvec) != r {
		return nil, fmt.Errorf("invalid data dimensions")
	}

	p := plot.New()

	p.Title.Text = "GP sample paths"
	p.X.Label.Text = "t"
	p.Y.Label.Text = "f(t)"

	legend := plot.NewLegend()
	legend.Top = true
	p.Legend = legend

	for j := 0; j < c; j++ {
		line, err := plotter.NewLine(makePoints(tvec, paths, j))
		if err != nil {
			return nil, fmt.Errorf("failed to create line: %v", err)
		}
		line.Color = color.RGBA{
			R: uint8(60 * (j + 1) % 256),
			G: uint8(120 * (j + 1) % 256),
			B: uint8(180 * (j + 1) % 256),
			A: 255,
		}

		p.Add(line)
		p.Legend.Add(fmt.Sprintf("path %d", j), line)
	}

	return p, nil
}

func makePoints(tvec []float64, m mat.Matrix, col int) plotter.XYs {
	pts := make(plotter.XYs, len(tvec))
	for i := range tvec {
		pts[i].X = tvec[i]
		pts[i].Y = m.At(i, col)
	}

	return pts
}
