package fare

import "time"

// =============================================================================
// TRANSFER (FREE CONNECTION) - Shared across all fare classes
// =============================================================================

// CanTransfer reports whether boarding line at the given instant qualifies
// as a free connection: a previous ride exists, the line differs from the
// last one, at most the transfer limit has elapsed (inclusive), and the
// instant falls inside the transfer window.
//
// No balance check is involved: a granted transfer rides free even on a
// card that could not afford a paid fare.
func (a *Account) CanTransfer(line string, now time.Time) bool {
	if !a.hasLastRide || line == a.lastLine {
		return false
	}
	if now.Sub(a.lastRide) > a.tariff.TransferLimit {
		return false
	}
	return a.tariff.TransferWindow.Contains(now)
}

// recordRide updates the shared transfer bookkeeping after any granted
// ride, paid or transferred, so that a chain of connections can continue.
// Policy-specific counters are deliberately left alone here.
func (a *Account) recordRide(line string, now time.Time) {
	a.lastLine = line
	a.lastRide = now
	a.hasLastRide = true
}
