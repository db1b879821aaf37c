package storytime

import "sort"

// orderedEntry is the registry's record for one item.
type orderedEntry[T comparable] struct {
	item   T
	zOrder int
}

// orderedRegistry assigns every registered item a rank reflecting insertion
// order, independent of where the item is in space. Ranks are dense in [0, N)
// after every mutation.
type orderedRegistry[T comparable] struct {
	entries map[T]*orderedEntry[T]
	next    int
}

func newOrderedRegistry[T comparable]() *orderedRegistry[T] {
	return &orderedRegistry[T]{entries: make(map[T]*orderedEntry[T])}
}

func (r *orderedRegistry[T]) len() int {
	return len(r.entries)
}

// register gives item the next rank. An item that is already registered keeps
// the rank it has.
func (r *orderedRegistry[T]) register(item T) int {
	if e, ok := r.entries[item]; ok {
		return e.zOrder
	}
	e := &orderedEntry[T]{item: item, zOrder: r.next}
	r.next++
	r.entries[item] = e
	return e.zOrder
}

// unregister removes item and renumbers the survivors to [0, N), keeping their
// relative order. Returns false if item was not registered.
func (r *orderedRegistry[T]) unregister(item T) bool {
	if _, ok := r.entries[item]; !ok {
		return false
	}
	delete(r.entries, item)
	r.compact()
	return true
}

func (r *orderedRegistry[T]) compact() {
	ordered := r.sortedEntries()
	for i, e := range ordered {
		e.zOrder = i
	}
	r.next = len(ordered)
}

// rankOf returns the current rank of item.
func (r *orderedRegistry[T]) rankOf(item T) (int, bool) {
	e, ok := r.entries[item]
	if !ok {
		return 0, false
	}
	return e.zOrder, true
}

// items returns every registered item, lowest rank first.
func (r *orderedRegistry[T]) items() []T {
	ordered := r.sortedEntries()
	out := make([]T, len(ordered))
	for i, e := range ordered {
		out[i] = e.item
	}
	return out
}

// sortAscending orders items back-to-front (lowest rank first). Items must
// all be registered.
func (r *orderedRegistry[T]) sortAscending(items []T) {
	sort.Slice(items, func(i, j int) bool {
		return r.entries[items[i]].zOrder < r.entries[items[j]].zOrder
	})
}

// sortDescending orders items front-to-back (highest rank first).
func (r *orderedRegistry[T]) sortDescending(items []T) {
	sort.Slice(items, func(i, j int) bool {
		return r.entries[items[i]].zOrder > r.entries[items[j]].zOrder
	})
}

func (r *orderedRegistry[T]) sortedEntries() []*orderedEntry[T] {
	out := make([]*orderedEntry[T], 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].zOrder < out[j].zOrder })
	return out
}
