package ledger

const maxPostalGifts = 3

// DrawPostalGifts picks up to three postal parts the player neither owns nor
// was offered before, and records them as offered. The result is empty when
// the postal catalog is spent.
func (l *Ledger) DrawPostalGifts() []PartID {
	pool := make([]PartID, 0, len(l.catalog.Postal))
	for _, id := range l.catalog.Postal {
		if l.HasPart(id) || l.offered(id) {
			continue
		}
		pool = append(pool, id)
	}

	count := min(maxPostalGifts, len(pool))
	picked := make([]PartID, 0, count)
	for i := 0; i < count; i++ {
		j := l.rng.IntN(len(pool))
		picked = append(picked, pool[j])
		pool = append(pool[:j], pool[j+1:]...)
	}
	l.postal = append(l.postal, picked...)
	return picked
}

// PostalHistory returns every part offered by post, oldest first.
func (l *Ledger) PostalHistory() []PartID {
	return append([]PartID(nil), l.postal...)
}

func (l *Ledger) offered(id PartID) bool {
	for _, p := range l.postal {
		if p == id {
			return true
		}
	}
	return false
}
