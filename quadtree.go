package storytime

const (
	defaultQuadtreeMaxItems = 8
	defaultQuadtreeMaxDepth = 8

	rootNode int32 = 0
	noNode   int32 = -1
)

// QuadtreeConfig tunes the scene's spatial partition. Zero fields fall back to
// the defaults.
type QuadtreeConfig struct {
	// MaxItems is the number of items a leaf holds before it subdivides.
	MaxItems int
	// MaxDepth caps subdivision; nodes at this depth never split.
	MaxDepth int
}

func (c QuadtreeConfig) withDefaults() QuadtreeConfig {
	if c.MaxItems <= 0 {
		c.MaxItems = defaultQuadtreeMaxItems
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = defaultQuadtreeMaxDepth
	}
	return c
}

// qtNode is one arena slot. Nodes reference each other by index so splits and
// merges never leave dangling pointers behind.
type qtNode[T comparable] struct {
	region   AABB
	depth    int
	parent   int32
	children [4]int32
	items    []T
}

func (n *qtNode[T]) isLeaf() bool {
	return n.children[0] == noNode
}

// quadtree is a loose-boundary region quadtree over items with identity.
// Items live in the deepest node whose region fully contains their box;
// items straddling a split line stay in the parent. Items that do not fit the
// root region stay in the root, which every query visits.
type quadtree[T comparable] struct {
	cfg      QuadtreeConfig
	boundsOf func(T) AABB
	nodes    []qtNode[T]
	free     []int32
	where    map[T]int32 // back-reference: item -> node currently holding it
	stack    []int32     // reused traversal buffer
}

func newQuadtree[T comparable](bounds AABB, boundsOf func(T) AABB, cfg QuadtreeConfig) *quadtree[T] {
	q := &quadtree[T]{
		cfg:      cfg.withDefaults(),
		boundsOf: boundsOf,
		where:    make(map[T]int32),
	}
	q.allocNode(bounds, 0, noNode)
	return q
}

func (q *quadtree[T]) len() int {
	return len(q.where)
}

func (q *quadtree[T]) contains(item T) bool {
	_, ok := q.where[item]
	return ok
}

// nodeRegion returns the region of the node holding item.
func (q *quadtree[T]) nodeRegion(item T) (AABB, bool) {
	idx, ok := q.where[item]
	if !ok {
		return AABB{}, false
	}
	return q.nodes[idx].region, true
}

// add inserts item at the deepest node fully containing its current box.
// Adding an item that is already present is a caller error.
func (q *quadtree[T]) add(item T) {
	box := q.boundsOf(item)
	idx := rootNode
	for !q.nodes[idx].isLeaf() {
		c := q.childFor(idx, box)
		if c == noNode {
			break
		}
		idx = c
	}
	q.nodes[idx].items = append(q.nodes[idx].items, item)
	q.where[item] = idx
	q.maybeSplit(idx)
}

// remove deletes item using the back-reference, so it works even after the
// item's box has changed in place. Returns false if item was not present.
func (q *quadtree[T]) remove(item T) bool {
	idx, ok := q.where[item]
	if !ok {
		return false
	}
	delete(q.where, item)

	n := &q.nodes[idx]
	for i, it := range n.items {
		if it == item {
			copy(n.items[i:], n.items[i+1:])
			var zero T
			n.items[len(n.items)-1] = zero
			n.items = n.items[:len(n.items)-1]
			break
		}
	}

	if n.isLeaf() {
		idx = n.parent
	}
	for idx != noNode && q.tryMerge(idx) {
		idx = q.nodes[idx].parent
	}
	return true
}

// query calls visit once for every item whose current box intersects region.
// NaN boxes never intersect anything.
// Visitation order is spatial, not z-order. visit must not call back into the
// tree.
func (q *quadtree[T]) query(region AABB, visit func(T)) {
	stack := append(q.stack[:0], rootNode)
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &q.nodes[idx]
		for _, it := range n.items {
			// Negative sizes only appear on items that reported malformed
			// bounds after insertion; they never match.
			if b := q.boundsOf(it); b.Width >= 0 && b.Height >= 0 && b.Intersects(region) {
				visit(it)
			}
		}
		if n.isLeaf() {
			continue
		}
		for _, c := range n.children {
			if q.nodes[c].region.Intersects(region) {
				stack = append(stack, c)
			}
		}
	}
	q.stack = stack[:0]
}

// intersect returns every item whose current box contains p.
func (q *quadtree[T]) intersect(p Vec2) []T {
	var out []T
	q.query(AABB{X: p.X, Y: p.Y}, func(it T) {
		out = append(out, it)
	})
	return out
}

// qtStats summarizes the tree shape for debug output.
type qtStats struct {
	nodes        int
	depth        int
	maxNodeItems int
}

func (q *quadtree[T]) stats() qtStats {
	var st qtStats
	q.walk(func(_ AABB, depth, items int) {
		st.nodes++
		if depth > st.depth {
			st.depth = depth
		}
		if items > st.maxNodeItems {
			st.maxNodeItems = items
		}
	})
	return st
}

// walk visits every live node depth-first.
func (q *quadtree[T]) walk(fn func(region AABB, depth, items int)) {
	var rec func(idx int32)
	rec = func(idx int32) {
		n := &q.nodes[idx]
		fn(n.region, n.depth, len(n.items))
		if n.isLeaf() {
			return
		}
		for _, c := range n.children {
			rec(c)
		}
	}
	rec(rootNode)
}

// --- internals ---

func (q *quadtree[T]) allocNode(region AABB, depth int, parent int32) int32 {
	n := qtNode[T]{
		region:   region,
		depth:    depth,
		parent:   parent,
		children: [4]int32{noNode, noNode, noNode, noNode},
	}
	if k := len(q.free); k > 0 {
		idx := q.free[k-1]
		q.free = q.free[:k-1]
		n.items = q.nodes[idx].items[:0]
		q.nodes[idx] = n
		return idx
	}
	q.nodes = append(q.nodes, n)
	return int32(len(q.nodes) - 1)
}

func (q *quadtree[T]) freeNode(idx int32) {
	n := &q.nodes[idx]
	clear(n.items)
	n.items = n.items[:0]
	n.parent = noNode
	n.children = [4]int32{noNode, noNode, noNode, noNode}
	q.free = append(q.free, idx)
}

// childFor returns the child of idx whose region fully contains box, or noNode
// when the box straddles a split line.
func (q *quadtree[T]) childFor(idx int32, box AABB) int32 {
	for _, c := range q.nodes[idx].children {
		if q.nodes[c].region.ContainsBox(box) {
			return c
		}
	}
	return noNode
}

// maybeSplit subdivides an overflowing leaf and pushes down every item that
// fits a quadrant. Children that overflow in turn are split recursively.
func (q *quadtree[T]) maybeSplit(idx int32) {
	n := &q.nodes[idx]
	if !n.isLeaf() || len(n.items) <= q.cfg.MaxItems || n.depth >= q.cfg.MaxDepth {
		return
	}

	quads := n.region.quadrants()
	depth := n.depth + 1
	var children [4]int32
	for i, r := range quads {
		// allocNode may grow the arena; n is not used past this loop.
		children[i] = q.allocNode(r, depth, idx)
	}
	q.nodes[idx].children = children

	items := q.nodes[idx].items
	keep := items[:0]
	for _, it := range items {
		c := q.childFor(idx, q.boundsOf(it))
		if c == noNode {
			keep = append(keep, it)
			continue
		}
		q.nodes[c].items = append(q.nodes[c].items, it)
		q.where[it] = c
	}
	clear(items[len(keep):])
	q.nodes[idx].items = keep

	for _, c := range children {
		q.maybeSplit(c)
	}
}

// tryMerge folds the children of idx back into it when they are all leaves and
// the combined item count fits in one node.
func (q *quadtree[T]) tryMerge(idx int32) bool {
	n := &q.nodes[idx]
	if n.isLeaf() {
		return false
	}
	total := len(n.items)
	for _, c := range n.children {
		cn := &q.nodes[c]
		if !cn.isLeaf() {
			return false
		}
		total += len(cn.items)
	}
	if total > q.cfg.MaxItems {
		return false
	}

	children := n.children
	for _, c := range children {
		for _, it := range q.nodes[c].items {
			q.nodes[idx].items = append(q.nodes[idx].items, it)
			q.where[it] = idx
		}
		q.freeNode(c)
	}
	q.nodes[idx].children = [4]int32{noNode, noNode, noNode, noNode}
	return true
}
