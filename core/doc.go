// Package core defines the directed adjacency-list Graph shared by the
// traversal packages (dfs, bfs).
//
// The Graph G = (V, E) is deliberately small:
//
//   - Vertices are any comparable type V (strings, ints, small structs).
//   - Each vertex owns an ordered slice of outgoing neighbours; insertion
//     order is preserved so traversals are deterministic.
//   - Vertex enumeration follows first-insertion order.
//   - Edges are directed and unweighted. Undirected graphs are modelled by
//     symmetric edges (AddUndirectedEdge).
//   - Parallel edges and self-loops are stored as given; algorithms decide
//     what they mean.
//
// Construction:
//
//	g := core.New[string]()
//	g.AddEdge("A", "B")  // creates A and B on demand
//	g.AddEdge("A", "C")
//
//	h := core.FromAdjacency(map[string][]string{
//	    "A": {"B", "C"}, "B": {"D"}, "C": {"D"}, "D": {},
//	})
//
// FromAdjacency inserts map keys in ascending order, because Go maps have no
// order of their own.
//
// Concurrency:
//
// A Graph carries no lock. Once built it is treated as read-only by every
// algorithm, and any number of goroutines may traverse it at once. Mutation
// concurrent with reads must be serialised by the caller.
//
// Errors:
//
//	ErrVertexNotFound - a read referenced a vertex that is not in the graph.
package core
