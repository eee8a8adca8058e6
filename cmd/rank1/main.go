package main

import (
	"errors"
	"fmt"
	"massbal"
)

func main() {
	components := []string{"CH4", "O2", "CO", "CO2", "H2O"}

	// The third reaction is the sum of the first two.
	nu := [][]float64{
		{-1, -1.5, 1, 0, 2},
		{0, -0.5, -1, 1, 0},
		{-1, -2, 0, 1, 2},
	}

	fmt.Printf("Components: %v\n", components)

	info := massbal.MatrixRank(nu, nil)
	fmt.Printf("Rank = %d of %d reactions\n", info.Rank, info.Rows)
	fmt.Printf("Independent reactions: %v\n", info.PivotRows())
	for _, p := range info.Pivots {
		fmt.Printf("  pivot row %d, column %s\n", p.Row+1, components[p.Col])
	}

	_, err := massbal.ReactMulti(massbal.MultiReactionInput{
		Components: components,
		Inlet:      []float64{1, 3, 0, 0, 0},
		Nu:         nu,
		Extents:    []float64{0.5, 0.2, 0.1},
	})

	var rankErr *massbal.RankError
	if errors.As(err, &rankErr) {
		fmt.Println(rankErr)
	}

	res, err := massbal.ReactMulti(massbal.MultiReactionInput{
		Components: components,
		Inlet:      []float64{1, 3, 0, 0, 0},
		Nu:         nu[:2],
		Extents:    []float64{0.8, 0.3},
	})
	if err != nil {
		panic(err)
	}

	fmt.Print(massbal.FormatStream("Outlet", res.Stream(components)))
}
