package stromboli

import "fmt"

// LayoutKind selects the navigation strategy for a domain.
type LayoutKind int

const (
	LayoutGrid    LayoutKind = iota // Index arithmetic over rows and columns
	LayoutList                      // Linear index arithmetic along one axis
	LayoutSpatial                   // Free-form navigation using element bounds
)

// Orientation is the axis of a list layout.
type Orientation int

const (
	OrientationVertical Orientation = iota
	OrientationHorizontal
)

// DefaultGridColumns is the column count used when a grid layout is
// requested without one.
const DefaultGridColumns = 3

// Layout describes how directional input maps to element selection within
// a domain. It is a closed set: grid with a column count, list with an
// orientation, or free-form spatial.
type Layout struct {
	Kind        LayoutKind
	Columns     int         // Grid only
	Orientation Orientation // List only
}

// GridLayout returns a grid layout with the given column count.
// A non-positive count falls back to DefaultGridColumns.
func GridLayout(columns int) Layout {
	if columns <= 0 {
		columns = DefaultGridColumns
	}
	return Layout{Kind: LayoutGrid, Columns: columns}
}

// ListLayout returns a list layout with the given orientation.
func ListLayout(o Orientation) Layout {
	return Layout{Kind: LayoutList, Orientation: o}
}

// SpatialLayout returns a free-form spatial layout.
func SpatialLayout() Layout {
	return Layout{Kind: LayoutSpatial}
}

// ParseLayout parses a layout mode string as it appears at the host
// boundary: "grid", "list-vertical", "list-horizontal", or "spatial".
// gridColumns applies to "grid" only; zero means DefaultGridColumns.
func ParseLayout(mode string, gridColumns int) (Layout, error) {
	switch mode {
	case "grid":
		return GridLayout(gridColumns), nil
	case "list-vertical":
		return ListLayout(OrientationVertical), nil
	case "list-horizontal":
		return ListLayout(OrientationHorizontal), nil
	case "spatial":
		return SpatialLayout(), nil
	default:
		return Layout{}, fmt.Errorf("layout mode %q: %w", mode, ErrInvalidInput)
	}
}

// String returns the boundary string form of the layout.
func (l Layout) String() string {
	switch l.Kind {
	case LayoutGrid:
		return fmt.Sprintf("grid(%d)", l.Columns)
	case LayoutList:
		if l.Orientation == OrientationHorizontal {
			return "list-horizontal"
		}
		return "list-vertical"
	case LayoutSpatial:
		return "spatial"
	default:
		return "unknown"
	}
}

// ElementKind is the category of a navigable element. The set is closed so
// that adding a category later is an explicit type change; the only kind in
// the current design is a button.
type ElementKind int

const (
	ElementButton ElementKind = iota
)

// String returns a string representation of the element kind.
func (k ElementKind) String() string {
	switch k {
	case ElementButton:
		return "Button"
	default:
		return "Unknown"
	}
}
