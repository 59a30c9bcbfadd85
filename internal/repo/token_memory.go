package repo

import (
	"sync"
	"time"
)

// InMemoryTokenRepository is an in-memory implementation of TokenRepository.
type InMemoryTokenRepository struct {
	mu      sync.Mutex
	digests map[string]time.Time
}

func NewInMemoryTokenRepository() *InMemoryTokenRepository {
	return &InMemoryTokenRepository{digests: map[string]time.Time{}}
}

func (r *InMemoryTokenRepository) Blacklist(digest string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.digests[digest]; ok {
		return nil
	}
	r.digests[digest] = expiresAt
	return nil
}

func (r *InMemoryTokenRepository) IsBlacklisted(digest string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.digests[digest]
	return ok, nil
}

func (r *InMemoryTokenRepository) PurgeExpired(now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	purged := 0
	for digest, expiresAt := range r.digests {
		if expiresAt.Before(now) {
			delete(r.digests, digest)
			purged++
		}
	}
	return purged, nil
}

func (r *InMemoryTokenRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.digests = map[string]time.Time{}
}
