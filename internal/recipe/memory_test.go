package recipe

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

func seed() []domain.Recipe {
	return []domain.Recipe{
		{ID: "1", Name: "Tomato Soup", Description: "Warm.", Ingredients: []string{"tomatoes", "salt"}},
		{ID: "2", Name: "Bread", Description: "Crusty.", Ingredients: []string{"flour", "water", "yeast"}},
		{ID: "3", Name: "Pancakes", Ingredients: []string{"eggs", "flour", "milk"}},
	}
}

func newStore(t *testing.T, opts ...Option) *MemoryStore {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	opts = append([]Option{WithSeed(seed())}, opts...)
	return NewMemoryStore(log, opts...)
}

func ids(recipes []domain.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.ID
	}
	return out
}

func TestMemoryStoreSeedKeepsOrderAndIDs(t *testing.T) {
	s := newStore(t)
	if diff := cmp.Diff(seed(), s.List()); diff != "" {
		t.Fatalf("seeded list mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryStoreAdd(t *testing.T) {
	s := newStore(t)
	before := s.List()

	added := s.Add(domain.Recipe{ID: "2", Name: "Salad", Ingredients: []string{"lettuce"}})

	after := s.List()
	if len(after) != len(before)+1 {
		t.Fatalf("expected %d recipes, got %d", len(before)+1, len(after))
	}
	for _, r := range before {
		if r.ID == added.ID {
			t.Fatalf("added id %q reuses an existing id", added.ID)
		}
	}
	last := after[len(after)-1]
	want := domain.Recipe{ID: added.ID, Name: "Salad", Ingredients: []string{"lettuce"}}
	if diff := cmp.Diff(want, last); diff != "" {
		t.Fatalf("appended recipe mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryStoreAddSkipsTakenIDs(t *testing.T) {
	// The sequential generator's first outputs collide with the seed.
	log := logger.New(logger.LevelOff, nil)
	s := NewMemoryStore(log,
		WithSeed([]domain.Recipe{{ID: "r-1", Name: "A"}, {ID: "r-2", Name: "B"}}),
		WithIDGenerator(SequentialIDs("r")),
	)

	added := s.Add(domain.Recipe{Name: "C"})
	if added.ID != "r-3" {
		t.Fatalf("expected r-3, got %q", added.ID)
	}
}

func TestMemoryStoreAddFallsBackWhenGeneratorIsStuck(t *testing.T) {
	s := newStore(t, WithIDGenerator(func() string { return "1" }))
	added := s.Add(domain.Recipe{Name: "Stuck"})
	if added.ID == "" || added.ID == "1" {
		t.Fatalf("expected a fresh id, got %q", added.ID)
	}
}

func TestMemoryStoreUpdate(t *testing.T) {
	s := newStore(t)

	tests := []struct {
		name    string
		id      string
		wantOK  bool
		wantIDs []string
	}{
		{"existing keeps position", "2", true, []string{"1", "2", "3"}},
		{"missing is a no-op", "nope", false, []string{"1", "2", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := domain.Recipe{ID: "ignored", Name: "Sourdough", Ingredients: []string{"starter"}}
			if ok := s.Update(tt.id, r); ok != tt.wantOK {
				t.Fatalf("Update ok=%v, want %v", ok, tt.wantOK)
			}
			got := s.List()
			if diff := cmp.Diff(tt.wantIDs, ids(got)); diff != "" {
				t.Fatalf("ids mismatch (-want +got):\n%s", diff)
			}
			if tt.wantOK {
				want := domain.Recipe{ID: tt.id, Name: "Sourdough", Ingredients: []string{"starter"}}
				if diff := cmp.Diff(want, got[1]); diff != "" {
					t.Fatalf("updated entry mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestMemoryStoreRemove(t *testing.T) {
	tests := []struct {
		name        string
		id          string
		wantRemoved int
		wantIDs     []string
	}{
		{"middle", "2", 1, []string{"1", "3"}},
		{"missing", "9", 0, []string{"1", "2", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			if n := s.Remove(tt.id); n != tt.wantRemoved {
				t.Fatalf("removed %d, want %d", n, tt.wantRemoved)
			}
			if diff := cmp.Diff(tt.wantIDs, ids(s.List())); diff != "" {
				t.Fatalf("ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMemoryStoreRemoveAllDuplicates(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	s := NewMemoryStore(log, WithSeed([]domain.Recipe{
		{ID: "x", Name: "A"}, {ID: "y", Name: "B"}, {ID: "x", Name: "C"},
	}))

	if n := s.Remove("x"); n != 2 {
		t.Fatalf("removed %d, want 2", n)
	}
	if diff := cmp.Diff([]string{"y"}, ids(s.List())); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryStoreListIsSnapshot(t *testing.T) {
	s := newStore(t)

	list := s.List()
	list[0].Name = "Changed"
	list[0].Ingredients[0] = "changed"
	list = append(list[:1], list[2:]...)

	got, err := s.Get("1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Tomato Soup" || got.Ingredients[0] != "tomatoes" {
		t.Fatalf("store was mutated through snapshot: %+v", got)
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 recipes, got %d", s.Len())
	}
}

func TestMemoryStoreGet(t *testing.T) {
	s := newStore(t)

	tests := []struct {
		id      string
		wantErr error
	}{
		{"1", nil},
		{"3", nil},
		{"nonexistent", domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			r, err := s.Get(tt.id)
			if err != tt.wantErr {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr == nil && r.ID != tt.id {
				t.Fatalf("expected ID %s, got %s", tt.id, r.ID)
			}
		})
	}
}
