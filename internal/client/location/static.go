package location

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/world/internal/client/models"
)

// StaticSource is a Source with a fixed position and a configured permission
// answer. It stands in for platform location services on machines that have
// none. Without a position every Locate fails with ErrNoFix.
type StaticSource struct {
	mu       sync.Mutex
	status   AuthorizationStatus
	answer   AuthorizationStatus
	position *models.Coordinate
}

// NewStaticSource creates a source that starts NotDetermined and answers the
// permission prompt with answer. position may be nil.
func NewStaticSource(answer AuthorizationStatus, position *models.Coordinate) *StaticSource {
	s := &StaticSource{status: NotDetermined, answer: answer}
	if position != nil {
		p := *position
		s.position = &p
	}
	return s
}

func (s *StaticSource) AuthorizationStatus() AuthorizationStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *StaticSource) RequestAuthorization(ctx context.Context) (AuthorizationStatus, error) {
	if err := ctx.Err(); err != nil {
		return NotDetermined, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == NotDetermined {
		s.status = s.answer
	}
	return s.status, nil
}

func (s *StaticSource) Locate(ctx context.Context) (models.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return models.Coordinate{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.position == nil {
		return models.Coordinate{}, ErrNoFix
	}
	return *s.position, nil
}

// Move changes the fixed position; nil removes it.
func (s *StaticSource) Move(position *models.Coordinate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if position == nil {
		s.position = nil
		return
	}
	p := *position
	s.position = &p
}
