package theory_test

import (
	"fmt"

	"github.com/katalvlaran/cdpwalk/theory"
)

// ExampleSymmetric prints the linear profile on five sites.
func ExampleSymmetric() {
	pp, err := theory.Symmetric(5)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Println(pp)
	// Output:
	// [1 0.75 0.5 0.25 0]
}

// ExampleAsymmetric prints the profile of a right-biased walker on three sites.
func ExampleAsymmetric() {
	pp, err := theory.Asymmetric(0.6, 3)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Printf("%.2f\n", pp)
	// Output:
	// [1.00 0.40 0.00]
}
