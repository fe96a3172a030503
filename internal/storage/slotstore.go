// Package storage owns the durable key-value slots the journal persists
// into. A slot holds one string-serialized value (usually JSON) under a
// fixed key and survives process restarts; reads and writes are
// synchronous from the caller's point of view.
package storage

import "context"

// Well-known slot keys.
const (
	SlotTravelRecords = "travelRecords"
	SlotIsLoggedIn    = "isLoggedIn"
	SlotUser          = "user"
	SlotUsers         = "users"
)

// SlotStore is the durable medium. Get reports found=false for a key
// that was never written or was deleted. A failed Set must leave the
// previously stored value intact.
type SlotStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
