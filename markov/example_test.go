package markov_test

import (
	"fmt"

	"github.com/katalvlaran/cdpwalk/markov"
)

// ExampleChain_Absorption solves the symmetric walk on [0, 4] exactly.
func ExampleChain_Absorption() {
	c := markov.Chain{Lower: 0, Upper: 4, Right: 0.5}
	pj, err := c.Absorption()
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	steps, err := c.ExpectedSteps()
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Printf("pj=%.2f\nsteps=%.1f\n", pj, steps)
	// Output:
	// pj=[1.00 0.75 0.50 0.25 0.00]
	// steps=[0.0 3.0 4.0 3.0 0.0]
}
