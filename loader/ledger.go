package loader

// entryState is where an id stands with the engine loader.
type entryState int

const (
	stateRequested entryState = iota + 1
	stateLoaded
)

type ledgerEntry struct {
	state      entryState
	generation uint64
}

// Ledger records which ids were requested from the engine loader during one
// scene. An id is present while in flight and after loading; failed ids are
// forgotten so a later request tries them again.
type Ledger struct {
	entries map[string]ledgerEntry
}

func NewLedger() *Ledger {
	return &Ledger{entries: make(map[string]ledgerEntry)}
}

// Requested reports whether id is in flight or loaded.
func (l *Ledger) Requested(id string) bool {
	_, ok := l.entries[id]
	return ok
}

// InFlight reports whether id was issued and has not finished loading.
func (l *Ledger) InFlight(id string) bool {
	return l.entries[id].state == stateRequested
}

// Loaded reports whether the engine finished loading id.
func (l *Ledger) Loaded(id string) bool {
	return l.entries[id].state == stateLoaded
}

// Len is the number of ids in flight or loaded.
func (l *Ledger) Len() int {
	return len(l.entries)
}

func (l *Ledger) markRequested(id string, generation uint64) {
	l.entries[id] = ledgerEntry{state: stateRequested, generation: generation}
}

// settle marks every id issued at or before generation as loaded and returns
// the ids that changed.
func (l *Ledger) settle(generation uint64) []string {
	var settled []string
	for id, e := range l.entries {
		if e.state == stateRequested && e.generation <= generation {
			l.entries[id] = ledgerEntry{state: stateLoaded, generation: e.generation}
			settled = append(settled, id)
		}
	}
	return settled
}

func (l *Ledger) forget(id string) {
	delete(l.entries, id)
}
