package rls

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

const seed = 11772

//linearDataset draws an h x w design from U(-1, 1), a random coefficient vector with
//the intercept last and the exact targets.
func linearDataset(src rand.Source, h, w int) (x [][]float64, y []float64, theta []float64) {
	uniform := distuv.Uniform{Min: -1, Max: 1, Src: src}

	theta = make([]float64, w+1)
	for q := range theta {
		theta[q] = uniform.Rand()
	}

	x = make([][]float64, h)
	y = make([]float64, h)
	for p := range x {
		x[p] = make([]float64, w)
		val := theta[w]
		for q := range x[p] {
			x[p][q] = uniform.Rand()
			val += theta[q] * x[p][q]
		}
		y[p] = val
	}
	return x, y, theta
}

//replicate repeats every row p exactly counts[p] times.
func replicate(x [][]float64, y []float64, counts []int) ([][]float64, []float64) {
	var xr [][]float64
	var yr []float64
	for p, count := range counts {
		for k := 0; k < count; k++ {
			xr = append(xr, append([]float64(nil), x[p]...))
			yr = append(yr, y[p])
		}
	}
	return xr, yr
}

func ones(n int) []float64 {
	w := make([]float64, n)
	for p := range w {
		w[p] = 1
	}
	return w
}
