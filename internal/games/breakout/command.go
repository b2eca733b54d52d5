package breakout

import "github.com/vovakirdan/gridbreak/internal/core"

// Command is the single input consumed by one turn.
type Command int

const (
	CommandStay Command = iota
	CommandLeft
	CommandRight
	CommandFire // accepted, no effect
	CommandQuit
)

// Key codes a bot returns to select a command.
const (
	KeyWest = 'a'
	KeyEast = 'd'
	KeyFire = 'w'
	KeyStay = 's'
	KeyQuit = 'Q'
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CommandStay:
		return "stay"
	case CommandLeft:
		return "west"
	case CommandRight:
		return "east"
	case CommandFire:
		return "fire"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Key returns the key code for the command.
func (c Command) Key() int {
	switch c {
	case CommandLeft:
		return KeyWest
	case CommandRight:
		return KeyEast
	case CommandFire:
		return KeyFire
	case CommandQuit:
		return KeyQuit
	default:
		return KeyStay
	}
}

// CommandFromKey maps a key code to a command. Unknown codes stay put.
func CommandFromKey(code int) Command {
	switch code {
	case KeyWest:
		return CommandLeft
	case KeyEast:
		return CommandRight
	case KeyFire:
		return CommandFire
	case KeyQuit:
		return CommandQuit
	default:
		return CommandStay
	}
}

// CommandFromInput picks the command for a turn from collected key actions.
// Quit wins over movement; otherwise the most recent action is used.
func CommandFromInput(in core.InputFrame) Command {
	if in.Has(core.ActionQuit) {
		return CommandQuit
	}
	switch in.Last {
	case core.ActionLeft:
		return CommandLeft
	case core.ActionRight:
		return CommandRight
	case core.ActionFire:
		return CommandFire
	default:
		return CommandStay
	}
}
