package action

import "strings"

// Flags modify how an action runs.
type Flags uint32

const (
	// FlagGhost marks a provisional preview placement. Ghost actions never
	// touch finances, and actions that are not placements reject it.
	FlagGhost Flags = 1 << iota
	// FlagAllowWhilePaused lets the action run while the game is paused.
	FlagAllowWhilePaused
	// FlagNoSpend suppresses finance accounting for the action.
	FlagNoSpend
	// FlagNetworkOrigin marks an action received from a remote player.
	FlagNetworkOrigin
	// FlagClientOnly marks an action that is never replicated.
	FlagClientOnly
)

var flagNames = []struct {
	f    Flags
	name string
}{
	{FlagGhost, "ghost"},
	{FlagAllowWhilePaused, "allow_while_paused"},
	{FlagNoSpend, "no_spend"},
	{FlagNetworkOrigin, "network_origin"},
	{FlagClientOnly, "client_only"},
}

// Has reports whether every bit of x is set in f.
func (f Flags) Has(x Flags) bool {
	return f&x == x
}

// String returns the set flag names joined with "|", or "none".
func (f Flags) String() string {
	var parts []string
	for _, n := range flagNames {
		if f&n.f != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}
