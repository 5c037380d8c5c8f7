// Package services contains the application services of the client.
// This file defines the post storage service: the ordered list of saved
// posts kept as one JSON blob under a single key of the local kv store.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/world/internal/client/models"
	"github.com/dmitrijs2005/world/internal/client/repositories/kv"
	"github.com/dmitrijs2005/world/internal/dbx"
	"github.com/dmitrijs2005/world/internal/logging"
)

// PostsKey is the kv key holding the encoded post list.
const PostsKey = "world_saved_posts"

// PostStorageService persists saved posts, most recent first.
//
// Contract:
//   - LoadAll never fails: an absent, unreadable or undecodable blob reads
//     as an empty list.
//   - Save prepends the record and rewrites the whole blob.
//   - There is no update or delete.
type PostStorageService interface {
	LoadAll(ctx context.Context) []models.PostRecord
	Save(ctx context.Context, record models.PostRecord) error
	Count(ctx context.Context) int
}

// postStorageService serializes its read-modify-write cycles with a mutex and
// runs each one in a single transaction, so overlapping saves in one process
// cannot drop a record. Other processes writing the same database still race
// on the blob (last writer wins).
type postStorageService struct {
	db  *sql.DB
	log logging.Logger
	mu  sync.Mutex
}

// NewPostStorageService constructs a PostStorageService over the local database.
func NewPostStorageService(db *sql.DB, log logging.Logger) PostStorageService {
	return &postStorageService{db: db, log: log}
}

// LoadAll returns the stored posts, most recent first.
func (s *postStorageService) LoadAll(ctx context.Context) []models.PostRecord {
	return s.load(ctx, kv.NewSQLiteRepository(s.db))
}

func (s *postStorageService) load(ctx context.Context, repo kv.Repository) []models.PostRecord {
	blob, err := repo.Get(ctx, PostsKey)
	if err != nil {
		s.log.Warn(ctx, "stored posts unreadable, treating as empty", "key", PostsKey, "err", err)
		return []models.PostRecord{}
	}
	if blob == nil {
		return []models.PostRecord{}
	}

	var posts []models.PostRecord
	if err := json.Unmarshal(blob, &posts); err != nil {
		s.log.Warn(ctx, "stored posts undecodable, treating as empty", "key", PostsKey, "err", err)
		return []models.PostRecord{}
	}
	if posts == nil {
		posts = []models.PostRecord{}
	}
	return posts
}

// Save inserts record at the head of the list.
func (s *postStorageService) Save(ctx context.Context, record models.PostRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)

		current := s.load(ctx, repo)
		posts := make([]models.PostRecord, 0, len(current)+1)
		posts = append(posts, record)
		posts = append(posts, current...)

		blob, err := json.Marshal(posts)
		if err != nil {
			return fmt.Errorf("encode posts: %w", err)
		}
		if err := repo.Set(ctx, PostsKey, blob); err != nil {
			return fmt.Errorf("write posts: %w", err)
		}

		s.log.Debug(ctx, "post saved", "id", record.ID, "total", len(posts))
		return nil
	})
}

// Count returns the number of stored posts.
func (s *postStorageService) Count(ctx context.Context) int {
	return len(s.LoadAll(ctx))
}
