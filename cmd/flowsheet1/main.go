package main

import (
	"fmt"
	"massbal"
)

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func main() {
	components := []string{"A", "B"}

	fs := massbal.NewFlowsheet(components, nil)

	units := []struct {
		id     string
		params massbal.UnitParams
	}{
		{"fresh", massbal.FeedParams{Flow: 80, Fractions: []float64{1, 0}}},
		{"makeup", massbal.FeedParams{Flow: 20, Fractions: []float64{0.5, 0.5}}},
		{"mix", massbal.MixerParams{}},
		{"reactor", massbal.SimpleReactionParams{
			Nu:         []float64{-1, 1},
			Conversion: &massbal.Conversion{Key: 0, Value: 0.25},
		}},
		{"column", massbal.SeparatorParams{Recovery: 0.9, Distillate: massbal.Given(70)}},
		{"top", massbal.SinkParams{}},
		{"bottom", massbal.SinkParams{}},
	}
	for _, u := range units {
		_, err := fs.AddUnit(u.id, u.params)
		must(err)
	}

	must(fs.AddLink("fresh", "mix"))
	must(fs.AddLink("makeup", "mix"))
	must(fs.AddLink("mix", "reactor"))
	must(fs.AddLink("reactor", "column"))
	must(fs.AddLink("column", "top"))
	must(fs.AddLink("column", "bottom"))

	report, err := fs.Run()
	must(err)

	fmt.Printf("Order: %v\n", report.Order)
	for _, u := range report.Units {
		fmt.Printf("  %-8s %-11s %s\n", u.ID, u.Kind, u.Badge())
	}
	for _, s := range report.Sinks {
		fmt.Print(massbal.FormatStream("Sink "+s.ID, s.Stream))
	}
	for _, w := range report.Warnings {
		fmt.Println("warning:", w)
	}
}
