package prim_kruskal

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNetworkNil is returned when a nil *Network is passed.
	ErrNetworkNil = errors.New("prim_kruskal: network is nil")

	// ErrDisconnected indicates that no spanning tree covers every vertex.
	ErrDisconnected = errors.New("prim_kruskal: graph is disconnected")

	// ErrRootNotFound indicates that the Prim root is not in the network.
	ErrRootNotFound = errors.New("prim_kruskal: root vertex not found")

	// ErrInvalidWeight indicates a NaN edge weight.
	ErrInvalidWeight = errors.New("prim_kruskal: invalid edge weight")

	// ErrUnknownMethod is returned by Compute for an unsupported Method.
	ErrUnknownMethod = errors.New("prim_kruskal: unknown method")
)

// Edge is an undirected weighted edge between From and To.
type Edge[V comparable] struct {
	From   V
	To     V
	Weight float64
}

// Network is an undirected weighted graph kept as a vertex list plus an edge
// list, both in insertion order. The zero value is not usable; call
// NewNetwork.
type Network[V comparable] struct {
	order []V
	index map[V]int
	edges []Edge[V]
	adj   [][]int // vertex index -> positions in edges
}

// NewNetwork returns an empty network.
func NewNetwork[V comparable]() *Network[V] {
	return &Network[V]{index: make(map[V]int)}
}

// AddVertex adds v if absent.
func (n *Network[V]) AddVertex(v V) { n.ensure(v) }

// AddEdge adds the undirected edge u-v with weight w, creating missing
// endpoints. Parallel edges and self-loops are stored; the algorithms ignore
// self-loops.
func (n *Network[V]) AddEdge(u, v V, w float64) error {
	if math.IsNaN(w) {
		return fmt.Errorf("%w: %v-%v", ErrInvalidWeight, u, v)
	}
	iu, iv := n.ensure(u), n.ensure(v)
	pos := len(n.edges)
	n.edges = append(n.edges, Edge[V]{From: u, To: v, Weight: w})
	n.adj[iu] = append(n.adj[iu], pos)
	if iv != iu {
		n.adj[iv] = append(n.adj[iv], pos)
	}

	return nil
}

// Vertices returns the vertices in insertion order.
func (n *Network[V]) Vertices() []V { return append([]V(nil), n.order...) }

// Edges returns the edges in insertion order.
func (n *Network[V]) Edges() []Edge[V] { return append([]Edge[V](nil), n.edges...) }

// Order returns the number of vertices.
func (n *Network[V]) Order() int { return len(n.order) }

func (n *Network[V]) ensure(v V) int {
	if i, ok := n.index[v]; ok {
		return i
	}
	i := len(n.order)
	n.index[v] = i
	n.order = append(n.order, v)
	n.adj = append(n.adj, nil)

	return i
}

// Method names an MST algorithm for Compute.
type Method string

const (
	// MethodKruskal sorts all edges and merges components.
	MethodKruskal Method = "kruskal"

	// MethodPrim grows a tree from a root with a min-heap.
	MethodPrim Method = "prim"
)

// Options configures Compute. Use DefaultOptions for Kruskal.
type Options[V comparable] struct {
	// Method selects the algorithm.
	Method Method

	// Root is Prim's start vertex. When unset Prim starts from the first
	// inserted vertex. Ignored by Kruskal.
	Root    V
	hasRoot bool
}

// Option configures Options.
type Option[V comparable] func(*Options[V])

// DefaultOptions selects Kruskal.
func DefaultOptions[V comparable]() Options[V] {
	return Options[V]{Method: MethodKruskal}
}

// WithMethod selects the algorithm.
func WithMethod[V comparable](m Method) Option[V] {
	return func(o *Options[V]) { o.Method = m }
}

// WithRoot sets Prim's start vertex.
func WithRoot[V comparable](root V) Option[V] {
	return func(o *Options[V]) {
		o.Root = root
		o.hasRoot = true
	}
}

// Tree is a computed spanning tree.
type Tree[V comparable] struct {
	Edges  []Edge[V]
	Weight float64
}

// Compute runs the algorithm chosen by opts on n.
func Compute[V comparable](n *Network[V], opts ...Option[V]) (*Tree[V], error) {
	o := DefaultOptions[V]()
	for _, opt := range opts {
		opt(&o)
	}

	var (
		edges []Edge[V]
		total float64
		err   error
	)
	switch o.Method {
	case MethodKruskal:
		edges, total, err = Kruskal(n)
	case MethodPrim:
		root := o.Root
		if !o.hasRoot && n != nil && n.Order() > 0 {
			root = n.order[0]
		}
		edges, total, err = Prim(n, root)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, o.Method)
	}
	if err != nil {
		return nil, err
	}

	return &Tree[V]{Edges: edges, Weight: total}, nil
}
