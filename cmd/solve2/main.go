package main

import (
	"fmt"
	"massbal"
	"os"
)

func main() {
	var err error

	config := &massbal.Configuration{
		PrinterWidth: 80,
		Annotate:     massbal.ANNOTATE_NONE,
	}

	// Two extents, four component balances: solved in the least squares sense.
	A, err := massbal.FromRows([][]float64{
		{-1, 0},
		{1, -1},
		{0, 1},
		{-1, -1},
	}, config)
	if err != nil {
		panic(err)
	}

	A.Print(os.Stdout, true)

	b := []float64{-4.1, 2.9, 1.05, -5}

	x, err := A.SolveLeastSquares(b)
	if err != nil {
		panic(err)
	}

	fmt.Println("Least squares extents:")
	for i := range x {
		fmt.Printf("xi[%d] = %.6f\n", i+1, x[i])
	}

	r, err := A.MultiplyVector(x)
	if err != nil {
		panic(err)
	}
	fmt.Println("Residuals:")
	for i := range r {
		fmt.Printf("r[%d] = %+.6f\n", i, r[i]-b[i])
	}

	A.Destroy()
}
