// Package input reads directional commands from a Linux evdev keyboard
// device and delivers them to the shell, with software key repeat for
// held directions.
package input

import (
	"github.com/holoplot/go-evdev"

	"github.com/BrandonKowalski/stromboli/pkg/stromboli"
)

// Command is an abstract input action, mapped from physical key codes.
type Command int

const (
	CommandNone Command = iota
	CommandUp
	CommandDown
	CommandLeft
	CommandRight
	CommandActivate
)

// String returns a string representation of the command.
func (c Command) String() string {
	switch c {
	case CommandUp:
		return "up"
	case CommandDown:
		return "down"
	case CommandLeft:
		return "left"
	case CommandRight:
		return "right"
	case CommandActivate:
		return "activate"
	default:
		return ""
	}
}

// Direction converts a directional command to a navigator direction.
// Non-directional commands map to DirectionNone.
func (c Command) Direction() stromboli.Direction {
	switch c {
	case CommandUp:
		return stromboli.DirectionUp
	case CommandDown:
		return stromboli.DirectionDown
	case CommandLeft:
		return stromboli.DirectionLeft
	case CommandRight:
		return stromboli.DirectionRight
	default:
		return stromboli.DirectionNone
	}
}

// DefaultKeymap maps key codes to commands: WASD and the arrow keys for
// movement, enter and space for activation.
func DefaultKeymap() map[evdev.EvCode]Command {
	return map[evdev.EvCode]Command{
		evdev.KEY_W:     CommandUp,
		evdev.KEY_A:     CommandLeft,
		evdev.KEY_S:     CommandDown,
		evdev.KEY_D:     CommandRight,
		evdev.KEY_UP:    CommandUp,
		evdev.KEY_LEFT:  CommandLeft,
		evdev.KEY_DOWN:  CommandDown,
		evdev.KEY_RIGHT: CommandRight,
		evdev.KEY_ENTER: CommandActivate,
		evdev.KEY_SPACE: CommandActivate,
	}
}
