package core_test

import (
	"fmt"

	"github.com/katalvlaran/corekit/core"
)

// ExampleFromAdjacency builds the diamond A->{B,C}->D.
func ExampleFromAdjacency() {
	g := core.FromAdjacency(map[string][]string{
		"A": {"B", "C"},
		"B": {"D"},
		"C": {"D"},
		"D": {},
	})

	fmt.Println(g.Vertices(), g.Order(), g.Size())
	nbs, _ := g.Neighbors("A")
	fmt.Println(nbs)

	// Output:
	// [A B C D] 4 4
	// [B C]
}

// ExampleGraph_AddUndirectedEdge models an undirected square.
//
//	A───B
//	│   │
//	C───D
func ExampleGraph_AddUndirectedEdge() {
	g := core.New[string]()
	g.AddUndirectedEdge("A", "B")
	g.AddUndirectedEdge("A", "C")
	g.AddUndirectedEdge("B", "D")
	g.AddUndirectedEdge("C", "D")

	nbs, _ := g.Neighbors("D")
	fmt.Println(nbs, g.Size())

	// Output:
	// [B C] 8
}
