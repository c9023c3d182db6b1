// Package recipe provides the in-memory recipe collection.
package recipe

import (
	"sync"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeStore = (*MemoryStore)(nil)

// Option configures the store.
type Option func(*MemoryStore)

// WithSeed sets the initial collection. Seed recipes keep their ids.
func WithSeed(recipes []domain.Recipe) Option {
	return func(s *MemoryStore) {
		s.seed = recipes
	}
}

// WithIDGenerator sets how ids are assigned to added recipes.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *MemoryStore) {
		s.newID = gen
	}
}

// MemoryStore holds an ordered recipe collection in memory. Insertion
// order is display order. Safe for concurrent use.
//
// Every value going in or out is deep-copied, so callers never share
// ingredient slices with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	recipes []domain.Recipe
	newID   IDGenerator
	seed    []domain.Recipe
	log     *logger.Logger
}

// NewMemoryStore creates a recipe store with the given options.
func NewMemoryStore(log *logger.Logger, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		newID: RandomIDs(),
		log:   log,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.recipes = make([]domain.Recipe, 0, len(s.seed))
	for _, r := range s.seed {
		s.recipes = append(s.recipes, r.Clone())
	}
	s.seed = nil
	s.log.Debug("seeded %d recipes", len(s.recipes))
	return s
}

// Add appends a recipe under a freshly generated id and returns the
// stored copy. Any id on the argument is ignored.
func (s *MemoryStore) Add(r domain.Recipe) domain.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := r.Clone()
	stored.ID = s.uniqueID()
	s.recipes = append(s.recipes, stored)

	s.log.Info("recipe added: %s (%s)", stored.Name, stored.ID)
	return stored.Clone()
}

// maxIDAttempts bounds retries before falling back to random ids.
const maxIDAttempts = 16

// uniqueID draws ids until one is unused. Callers hold the write lock.
func (s *MemoryStore) uniqueID() string {
	gen := s.newID
	for attempt := 0; ; attempt++ {
		if attempt == maxIDAttempts {
			s.log.Warn("id generator keeps colliding, switching to random ids")
			gen = RandomIDs()
		}
		id := gen()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
		s.log.Debug("generated id %q is taken, retrying", id)
	}
}

// Update replaces the first recipe with the given id, keeping its
// position and id. Returns false if no recipe matches.
func (s *MemoryStore) Update(id string, r domain.Recipe) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.log.Debug("update: recipe not found: %s", id)
		return false
	}
	stored := r.Clone()
	stored.ID = id
	s.recipes[i] = stored

	s.log.Info("recipe updated: %s (%s)", stored.Name, id)
	return true
}

// Remove deletes every recipe with the given id and returns how many
// were removed.
func (s *MemoryStore) Remove(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.recipes[:0]
	removed := 0
	for _, r := range s.recipes {
		if r.ID == id {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	// Drop references held by the tail of the backing array.
	for i := len(kept); i < len(s.recipes); i++ {
		s.recipes[i] = domain.Recipe{}
	}
	s.recipes = kept

	if removed > 0 {
		s.log.Info("recipe removed: %s", id)
	} else {
		s.log.Debug("remove: recipe not found: %s", id)
	}
	return removed
}

// Get returns a copy of the recipe with the given id.
func (s *MemoryStore) Get(id string) (domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Recipe{}, domain.ErrNotFound
	}
	return s.recipes[i].Clone(), nil
}

// List returns a snapshot of the collection in display order.
func (s *MemoryStore) List() []domain.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Recipe, len(s.recipes))
	for i, r := range s.recipes {
		out[i] = r.Clone()
	}
	return out
}

// Len returns the number of recipes.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recipes)
}

func (s *MemoryStore) indexOf(id string) int {
	for i, r := range s.recipes {
		if r.ID == id {
			return i
		}
	}
	return -1
}
