package domain

import (
	"fmt"
	"strings"
)

// Action is the discrete decision a resolved query emits.
type Action uint8

const (
	ActionNone Action = iota
	ActionBuy
	ActionSell
	ActionCancel
)

// String returns the wire name of the action ("NONE", "BUY", ...).
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "NONE"
	case ActionBuy:
		return "BUY"
	case ActionSell:
		return "SELL"
	case ActionCancel:
		return "CANCEL"
	default:
		return fmt.Sprintf("ACTION(%d)", uint8(a))
	}
}

// ParseAction converts an action name (case-insensitive) into an Action.
func ParseAction(s string) (Action, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NONE":
		return ActionNone, nil
	case "BUY":
		return ActionBuy, nil
	case "SELL":
		return ActionSell, nil
	case "CANCEL":
		return ActionCancel, nil
	default:
		return ActionNone, fmt.Errorf("unknown action %q", s)
	}
}

// MarshalJSON encodes the action by name so reports stay readable.
func (a Action) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON accepts the name form produced by MarshalJSON.
func (a *Action) UnmarshalJSON(data []byte) error {
	parsed, err := ParseAction(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
