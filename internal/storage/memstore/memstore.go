package memstore

import (
	"context"

	"github.com/adventure-league/tracker/internal/storage"
)

// Open loads every collection from the key-value collaborator, seeding the
// fixture data into any collection that has never been written. Safe to call
// again against the same KV: once a collection exists it is loaded as-is.
func Open(ctx context.Context, kv KV, seed bool) (*storage.Stores, error) {
	fixtures := storage.FixtureSet{}
	if seed {
		fixtures = storage.Fixtures()
	}

	users, err := newUserStore(ctx, kv, fixtures.Users)
	if err != nil {
		return nil, err
	}
	characters, err := newCharacterStore(ctx, kv, fixtures.Characters)
	if err != nil {
		return nil, err
	}
	vouchers, err := newLootVoucherStore(ctx, kv, fixtures.Vouchers)
	if err != nil {
		return nil, err
	}
	attendance, err := newAttendanceStore(ctx, kv, fixtures.Tokens)
	if err != nil {
		return nil, err
	}

	return &storage.Stores{
		Users:      users,
		Characters: characters,
		Vouchers:   vouchers,
		Attendance: attendance,
	}, nil
}
