package main

import (
	"fmt"
	"massbal"
	"os"
)

func main() {
	var err error

	annotate := massbal.ANNOTATE_NONE

	config := &massbal.Configuration{
		PivotThreshold: massbal.PIVOT_THRESHOLD,
		PrinterWidth:   140,
		Annotate:       annotate,
	}

	// Feeds F1 (50% A) and F2 (10% A) blended into 100 of product P at 30% A.
	A, err := massbal.Create(3, 3, config)
	if err != nil {
		panic(err)
	}

	A.Clear()
	A.Set(0, 0, 1)
	A.Set(0, 1, 1)
	A.Set(0, 2, -1)

	A.Set(1, 0, 0.5)
	A.Set(1, 1, 0.1)
	A.Set(1, 2, -0.3)

	A.Set(2, 2, 1)

	A.Print(os.Stdout, true)

	b := []float64{0, 0, 100}

	fmt.Println("RHS b:")
	for i := range b {
		fmt.Printf("b[%d] = %.4f\n", i, b[i])
	}

	x, err := A.Solve(b)
	if err != nil {
		panic(err)
	}

	fmt.Println("Solution x:")
	for i := range x {
		fmt.Printf("x[%d] = %.4f\n", i, x[i])
	}
	fmt.Printf("Feed 1 = %.4f, Feed 2 = %.4f, Product = %.4f\n", x[0], x[1], x[2])
	fmt.Printf("Rows exchanged: %d\n", A.Exchanges)

	A.Destroy()
}
