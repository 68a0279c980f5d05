package stromboli

import "math"

// candidate pairs an id with the bounds considered during spatial search.
// It serves both in-domain spatial navigation (sibling elements) and
// cross-domain boundary search (other domains' bounding rectangles).
type candidate struct {
	id     string
	bounds Rect
}

// findNearestInDirection returns the id of the best candidate in the given
// direction from origin, or false if none lies in that direction.
//
// Candidates behind or beside the origin are excluded by a half-plane
// filter: the vector from the origin's center to the candidate's center
// must have a strictly positive dot product with the direction vector.
// Survivors are scored by euclidean distance plus twice the perpendicular
// offset from the travel axis, so aligned candidates win over nearer but
// off-axis ones. Equal scores break lexicographically by id to keep the
// search deterministic.
func findNearestInDirection(origin Rect, candidates []candidate, dir Direction) (string, bool) {
	dx, dy := dir.Vector()
	ox, oy := origin.Center()

	bestID := ""
	bestScore := math.Inf(1)
	found := false

	for _, c := range candidates {
		tx, ty := c.bounds.Center()
		if !inDirection(ox, oy, tx, ty, dx, dy) {
			continue
		}
		score := directionalDistance(ox, oy, tx, ty, dx)
		if !found || score < bestScore || (score == bestScore && c.id < bestID) {
			bestID = c.id
			bestScore = score
			found = true
		}
	}

	return bestID, found
}

// inDirection reports whether the target point lies in the forward
// half-plane from the current point along the direction vector. The
// threshold is strictly greater than zero: anything at or behind the
// origin is excluded, while targets less than one unit away still pass.
func inDirection(cx, cy, tx, ty, dx, dy float64) bool {
	return (tx-cx)*dx + (ty-cy)*dy > 0
}

// directionalDistance scores a target by euclidean distance plus a doubled
// penalty for displacement perpendicular to the travel axis. For
// horizontal movement the penalty is the vertical offset, and vice versa.
func directionalDistance(cx, cy, tx, ty, dx float64) float64 {
	vx := tx - cx
	vy := ty - cy

	direct := math.Hypot(vx, vy)

	perpendicular := math.Abs(vx)
	if dx != 0 {
		perpendicular = math.Abs(vy)
	}

	return direct + perpendicular*2
}

// navigateGrid computes the next index for a grid of the given column
// count, or false when the move would leave the grid. The last row may be
// short, so moving down additionally checks the target index exists.
func navigateGrid(current, total, columns int, dir Direction) (int, bool) {
	if total == 0 || columns <= 0 {
		return 0, false
	}

	rows := (total + columns - 1) / columns
	row := current / columns
	col := current % columns

	switch dir {
	case DirectionUp:
		if row > 0 {
			return current - columns, true
		}
	case DirectionDown:
		if row < rows-1 && current+columns < total {
			return current + columns, true
		}
	case DirectionLeft:
		if col > 0 {
			return current - 1, true
		}
	case DirectionRight:
		if col < columns-1 && current+1 < total {
			return current + 1, true
		}
	}
	return 0, false
}

// navigateList computes the next index in a list. Vertical lists respond
// to up/down only and horizontal lists to left/right only; the orthogonal
// directions never move.
func navigateList(current, total int, vertical bool, dir Direction) (int, bool) {
	if total == 0 {
		return 0, false
	}

	var backward, forward Direction
	if vertical {
		backward, forward = DirectionUp, DirectionDown
	} else {
		backward, forward = DirectionLeft, DirectionRight
	}

	switch dir {
	case backward:
		if current > 0 {
			return current - 1, true
		}
	case forward:
		if current < total-1 {
			return current + 1, true
		}
	}
	return 0, false
}
