package core

import (
	"sync"

	"github.com/arlet/classroom/internal/domain"
	"github.com/rs/zerolog/log"
)

// Registry maps a connection identifier to its participant record. It is the
// foundation every other component reads.
type Registry struct {
	mu           sync.RWMutex
	participants map[domain.ConnID]*domain.Participant
}

func NewRegistry() *Registry {
	return &Registry{participants: make(map[domain.ConnID]*domain.Participant)}
}

func (r *Registry) Add(p *domain.Participant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.participants[p.ConnID] = p
	log.Info().Str("module", "core.registry").Str("conn", string(p.ConnID)).Str("name", p.Name).Msg("participant registered")
}

func (r *Registry) Lookup(id domain.ConnID) (*domain.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.participants[id]
	return p, ok
}

// Remove is idempotent: removing an absent id reports false and mutates nothing.
func (r *Registry) Remove(id domain.ConnID) (*domain.Participant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[id]
	if !ok {
		return nil, false
	}
	delete(r.participants, id)
	log.Info().Str("module", "core.registry").Str("conn", string(id)).Msg("participant removed")
	return p, true
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.participants)
}

// Snapshot returns value copies, safe to hand to encoders.
func (r *Registry) Snapshot() []domain.Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Participant, 0, len(r.participants))
	for _, p := range r.participants {
		out = append(out, *p)
	}
	return out
}

// ConnIDs lists registered connection ids, skipping except when set. It is
// the membership set broadcast audiences are resolved against.
func (r *Registry) ConnIDs(except domain.ConnID) []domain.ConnID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.ConnID, 0, len(r.participants))
	for id := range r.participants {
		if id == except {
			continue
		}
		out = append(out, id)
	}
	return out
}

func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.participants = make(map[domain.ConnID]*domain.Participant)
}
