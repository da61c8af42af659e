package dsu

import "fmt"

// DSU is a disjoint-set forest over 0..n-1.
// parent[i] == i marks a root; rank is an upper bound on a root's tree height;
// size is only meaningful at roots.
type DSU struct {
	parent []int
	rank   []int
	size   []int
	count  int
}

// New returns a DSU over n singleton sets {0}, {1}, …, {n-1}.
// Returns ErrNegativeSize if n < 0.
//
// Complexity: O(n).
func New(n int) (*DSU, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeSize, n)
	}
	d := &DSU{
		parent: make([]int, n),
		rank:   make([]int, n),
		size:   make([]int, n),
		count:  n,
	}
	for i := 0; i < n; i++ {
		d.parent[i] = i
		d.size[i] = 1
	}

	return d, nil
}

// Len returns the size of the universe.
func (d *DSU) Len() int { return len(d.parent) }

// Count returns the current number of disjoint sets.
func (d *DSU) Count() int { return d.count }

// Find returns the root of x's set and re-points every node on the path
// from x directly at that root.
//
// Steps:
//  1. Walk parent links up to the root.
//  2. Walk the same path again, setting each parent to the root.
//
// Both walks are loops, so chains of any length are safe.
// Complexity: O(α(n)) amortised.
func (d *DSU) Find(x int) (int, error) {
	if err := d.check(x); err != nil {
		return 0, err
	}

	return d.find(x), nil
}

// Union merges the sets containing x and y.
// It returns false (and changes nothing) if they are already in the same set.
//
// Union by rank: the lower-rank root goes under the higher-rank root.
// On a tie, y's root goes under x's root and x's root rank grows by one.
//
// Complexity: O(α(n)) amortised.
func (d *DSU) Union(x, y int) (bool, error) {
	if err := d.check(x); err != nil {
		return false, err
	}
	if err := d.check(y); err != nil {
		return false, err
	}

	rx, ry := d.find(x), d.find(y)
	if rx == ry {
		return false, nil
	}

	switch {
	case d.rank[rx] < d.rank[ry]:
		d.link(rx, ry)
	case d.rank[rx] > d.rank[ry]:
		d.link(ry, rx)
	default:
		d.link(ry, rx)
		d.rank[rx]++
	}
	d.count--

	return true, nil
}

// Connected reports whether x and y belong to the same set.
func (d *DSU) Connected(x, y int) (bool, error) {
	if err := d.check(x); err != nil {
		return false, err
	}
	if err := d.check(y); err != nil {
		return false, err
	}

	return d.find(x) == d.find(y), nil
}

// SizeOf returns the number of elements in x's set.
func (d *DSU) SizeOf(x int) (int, error) {
	if err := d.check(x); err != nil {
		return 0, err
	}

	return d.size[d.find(x)], nil
}

// Parent returns the stored parent of x without compressing anything.
// Useful to observe tree shape; most callers want Find.
func (d *DSU) Parent(x int) (int, error) {
	if err := d.check(x); err != nil {
		return 0, err
	}

	return d.parent[x], nil
}

// Sets returns every set as an ascending slice of members. Sets are ordered
// by their smallest member, so the result is deterministic.
//
// Complexity: O(n α(n)).
func (d *DSU) Sets() [][]int {
	index := make(map[int]int, d.count) // root -> position in out
	out := make([][]int, 0, d.count)
	for i := range d.parent {
		r := d.find(i)
		pos, ok := index[r]
		if !ok {
			pos = len(out)
			index[r] = pos
			out = append(out, make([]int, 0, d.size[r]))
		}
		out[pos] = append(out[pos], i)
	}

	return out
}

// find is Find without bounds checking.
func (d *DSU) find(x int) int {
	root := x
	for d.parent[root] != root {
		root = d.parent[root]
	}
	for d.parent[x] != root {
		next := d.parent[x]
		d.parent[x] = root
		x = next
	}

	return root
}

// link attaches root child under root p.
func (d *DSU) link(child, p int) {
	d.parent[child] = p
	d.size[p] += d.size[child]
}

// check validates 0 <= x < n.
func (d *DSU) check(x int) error {
	if x < 0 || x >= len(d.parent) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, x, len(d.parent))
	}

	return nil
}
