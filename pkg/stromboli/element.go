package stromboli

import "sort"

// Element is a single focusable item inside a domain. Bounds are optional
// and supplied by the caller, not measured; spatial navigation skips
// elements without them. Order is the caller-assigned sequence number used
// for grid and list indexing.
type Element struct {
	ID      string
	Bounds  *Rect
	Enabled bool
	Order   int
}

// domain owns an ordered set of focusable elements, a layout mode,
// optional screen bounds, and a set of locked exit directions. The parent
// id is informational metadata only; there is no tree traversal.
type domain struct {
	id          string
	parentID    string
	elements    []Element // sorted by Order ascending at all times
	layout      Layout
	bounds      *Rect
	lockedExits map[Direction]bool

	// currentIndex remembers the last index reached by directional
	// navigation. It is advisory; the cursor is the source of truth.
	currentIndex int
}

func newDomain(id, parentID string, layout Layout) *domain {
	return &domain{
		id:          id,
		parentID:    parentID,
		layout:      layout,
		lockedExits: make(map[Direction]bool),
	}
}

func (d *domain) elementCount() int {
	return len(d.elements)
}

// indexOf returns the index of the element with the given id.
func (d *domain) indexOf(elementID string) (int, bool) {
	for i := range d.elements {
		if d.elements[i].ID == elementID {
			return i, true
		}
	}
	return 0, false
}

// elementAt returns the element at the given sorted index.
func (d *domain) elementAt(index int) (Element, bool) {
	if index < 0 || index >= len(d.elements) {
		return Element{}, false
	}
	return d.elements[index], true
}

// insert adds an element and re-establishes the Order sort.
func (d *domain) insert(e Element) {
	d.elements = append(d.elements, e)
	sort.SliceStable(d.elements, func(i, j int) bool {
		return d.elements[i].Order < d.elements[j].Order
	})
}

// remove deletes the element at the given index, preserving order.
func (d *domain) remove(index int) {
	d.elements = append(d.elements[:index], d.elements[index+1:]...)
}

// canExit reports whether boundary crossing is allowed in the given
// direction.
func (d *domain) canExit(dir Direction) bool {
	return !d.lockedExits[dir]
}

// DomainInfo is a read-only snapshot of a domain for debugging. Mutating
// it has no effect on the Navigator.
type DomainInfo struct {
	ID           string
	ParentID     string
	Elements     []Element
	Layout       Layout
	Bounds       *Rect
	LockedExits  []Direction
	CurrentIndex int
}

func (d *domain) snapshot() DomainInfo {
	info := DomainInfo{
		ID:           d.id,
		ParentID:     d.parentID,
		Elements:     make([]Element, len(d.elements)),
		Layout:       d.layout,
		CurrentIndex: d.currentIndex,
	}
	copy(info.Elements, d.elements)
	for i := range info.Elements {
		if b := info.Elements[i].Bounds; b != nil {
			c := *b
			info.Elements[i].Bounds = &c
		}
	}
	if d.bounds != nil {
		b := *d.bounds
		info.Bounds = &b
	}
	for _, dir := range []Direction{DirectionUp, DirectionDown, DirectionLeft, DirectionRight} {
		if d.lockedExits[dir] {
			info.LockedExits = append(info.LockedExits, dir)
		}
	}
	return info
}
