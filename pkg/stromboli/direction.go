package stromboli

import (
	"fmt"
	"strings"
)

// Direction represents a cardinal direction for navigation.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
	DirectionLeft
	DirectionRight
)

// Vector returns the unit vector for the direction. Y increases downward,
// so up is (0, -1).
func (d Direction) Vector() (dx, dy float64) {
	switch d {
	case DirectionUp:
		return 0, -1
	case DirectionDown:
		return 0, 1
	case DirectionLeft:
		return -1, 0
	case DirectionRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// String returns a string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return ""
	}
}

// ParseDirection parses a directional key symbol. It accepts the four
// direction names ("up", "down", "left", "right") as well as the WASD key
// letters, case-insensitively. Anything else fails with ErrInvalidInput;
// callers are expected to reject such input before it reaches the Navigator.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "w", "up":
		return DirectionUp, nil
	case "s", "down":
		return DirectionDown, nil
	case "a", "left":
		return DirectionLeft, nil
	case "d", "right":
		return DirectionRight, nil
	default:
		return DirectionNone, fmt.Errorf("direction %q: %w", s, ErrInvalidInput)
	}
}
