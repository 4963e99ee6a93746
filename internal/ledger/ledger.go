package ledger

import (
	"log"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
)

const (
	// compaction runs at most once per week and keeps the newest ids
	cleanupEvery = 7 * 24 * time.Hour
	keepLast     = 1000
)

// Ledger is the durable record of job ids that were already delivered.
// Membership decides "new vs seen" across runs; appends persist immediately
// so a crash mid-run never forgets a notification that already went out.
type Ledger struct {
	store       Store
	ids         mapset.Set[string]
	order       []string
	lastCleanup float64
	now         func() time.Time
}

// Open loads the ledger backed by the JSON file at path.
func Open(path string) (*Ledger, error) {
	store, err := NewFileStore(path)
	if err != nil {
		return nil, err
	}
	return New(store), nil
}

func New(store Store) *Ledger {
	l := &Ledger{
		store: store,
		ids:   mapset.NewThreadUnsafeSet[string](),
		now:   time.Now,
	}
	l.order, l.lastCleanup = store.Load()
	for _, id := range l.order {
		l.ids.Add(id)
	}
	if n := len(l.order); n > 0 {
		log.Printf("📋 Loaded %d previously sent jobs", n)
	}
	return l
}

// IsSent reports whether id was already delivered in this or a prior run.
func (l *Ledger) IsSent(id string) bool {
	return l.ids.Contains(id)
}

// Append records id as sent and persists the ledger. Appending an id that is
// already present is a no-op. When more than a week has passed since the last
// compaction, retention is truncated to the most recently appended thousand
// ids before persisting. A persistence failure is returned for logging but
// leaves the in-memory state intact; the run carries on.
func (l *Ledger) Append(id string) error {
	if id == "" || l.ids.Contains(id) {
		return nil
	}
	l.ids.Add(id)
	l.order = append(l.order, id)

	now := float64(l.now().Unix())
	if now-l.lastCleanup > cleanupEvery.Seconds() {
		if len(l.order) > keepLast {
			evicted := l.order[:len(l.order)-keepLast]
			l.order = append([]string(nil), l.order[len(l.order)-keepLast:]...)
			for _, old := range evicted {
				l.ids.Remove(old)
			}
		}
		l.lastCleanup = now
		log.Println("🧹 Cleaned up old job tracking data")
	}

	return l.store.Save(l.order, l.lastCleanup)
}

// Len returns the number of ids currently retained.
func (l *Ledger) Len() int {
	return len(l.order)
}

func (l *Ledger) Close() error {
	return l.store.Close()
}
