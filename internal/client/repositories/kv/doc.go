// Package kv is the device-local key-value store: one opaque blob per key,
// backed by the SQLite table kv(key TEXT PRIMARY KEY, value BLOB).
//
// The repository is bound to a dbx.DBTX, so the same code runs against the
// pool or inside a transaction:
//
//	repo := kv.NewSQLiteRepository(db)
//	blob, _ := repo.Get(ctx, "world_saved_posts") // nil, nil when absent
//	_ = repo.Set(ctx, "world_saved_posts", blob)
package kv
