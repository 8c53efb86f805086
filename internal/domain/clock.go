package domain

import "github.com/jonboulle/clockwork"

// clock stamps Table.LoadedAt. Tests pin it with SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used when building tables. Pass nil to
// restore the real clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
