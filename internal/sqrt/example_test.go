package sqrt_test

import (
	"context"
	"fmt"
	"log"

	"github.com/rputra/rootcalc/internal/progress"
	"github.com/rputra/rootcalc/internal/sqrt"
)

// ExampleEngine computes the square root of nine at twenty decimal digits.
// Eight Heron iterations from the automatic seed settle on the exact root.
func ExampleEngine() {
	bits := sqrt.DigitsToBits(20)
	a, err := sqrt.ParseDecimal("9", bits)
	if err != nil {
		log.Fatal(err)
	}
	x0, err := sqrt.AutoInitialGuess(a)
	if err != nil {
		log.Fatal(err)
	}

	engine, err := sqrt.NewDefaultFactory().Get(sqrt.MethodHeron)
	if err != nil {
		log.Fatal(err)
	}
	root, seq, err := engine.Compute(context.Background(), a, x0, 8, progress.NopCallback)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(len(seq))
	fmt.Println(root.Text('e', 3))
	// Output:
	// 9
	// 3.000e+00
}
