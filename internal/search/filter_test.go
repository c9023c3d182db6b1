package search

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hammamikhairi/recipebox/internal/domain"
)

var collection = []domain.Recipe{
	{ID: "1", Name: "Tomato Soup"},
	{ID: "2", Name: "Bread"},
	{ID: "3", Name: "Green Tomato Relish"},
	{ID: "4", Name: "Flatbread"},
}

func TestFilterEmptyQueryReturnsCollection(t *testing.T) {
	got := Filter(collection, "")
	if diff := cmp.Diff(collection, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		query   string
		wantIDs []string
	}{
		{"tom", []string{"1", "3"}},
		{"TOMATO", []string{"1", "3"}},
		{"bread", []string{"2", "4"}},
		{"soup", []string{"1"}},
		{" ", []string{"1", "3"}},
		{"pizza", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := Filter(collection, tt.query)
			gotIDs := make([]string, len(got))
			for i, r := range got {
				gotIDs[i] = r.ID
			}
			if diff := cmp.Diff(tt.wantIDs, gotIDs); diff != "" {
				t.Fatalf("Filter(%q) ids mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	in := []domain.Recipe{{ID: "1", Name: "Tomato Soup"}, {ID: "2", Name: "Bread"}}
	_ = Filter(in, "bread")
	if in[0].ID != "1" || in[1].ID != "2" || len(in) != 2 {
		t.Fatalf("input was modified: %+v", in)
	}
}
