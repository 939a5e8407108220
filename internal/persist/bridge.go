package persist

import (
	"context"
	"time"

	"github.com/ptarn/cadence/internal/model"
	"github.com/ptarn/cadence/internal/store"
)

// saveTimeout bounds a single mirror write.
const saveTimeout = 10 * time.Second

// Mirror subscribes the snapshot store to the record store so every
// mutation is written through. Writes are best-effort: a failure is passed
// to onError and the in-memory store keeps operating.
func Mirror(rs *store.Store, db *SQLiteStore, onError func(error)) {
	rs.Subscribe(func(state model.State) {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := db.Save(ctx, state); err != nil && onError != nil {
			onError(err)
		}
	})
}

// Restore loads the persisted snapshot into a new record store. When the
// database is empty or unreadable it falls back to the seed dataset; a read
// failure is reported through onError but never fatal.
func Restore(ctx context.Context, db *SQLiteStore, today model.Date, onError func(error)) *store.Store {
	state, ok, err := db.Load(ctx)
	if err != nil {
		if onError != nil {
			onError(err)
		}
		ok = false
	}
	if !ok {
		state = store.Seed(today)
	}
	return store.New(state)
}
