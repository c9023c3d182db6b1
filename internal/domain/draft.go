package domain

import "fmt"

// Mode is the state of the add/edit modal.
type Mode int

const (
	// ModeClosed means no draft exists.
	ModeClosed Mode = iota
	// ModeCreating holds a draft for a new recipe.
	ModeCreating
	// ModeEditing holds a copy of an existing recipe.
	ModeEditing
)

// String returns a human-readable mode.
func (m Mode) String() string {
	switch m {
	case ModeClosed:
		return "closed"
	case ModeCreating:
		return "creating"
	case ModeEditing:
		return "editing"
	default:
		return "unknown"
	}
}

// DraftToken identifies one draft session. A token handed out for a
// draft never matches any later draft.
type DraftToken uint64

// Draft is an uncommitted recipe being created or edited.
type Draft struct {
	Mode       Mode
	OriginalID string // set in ModeEditing
	Recipe     Recipe
	Token      DraftToken
}

// Field names a draft attribute settable from the form.
type Field string

const (
	FieldName        Field = "name"
	FieldDescription Field = "description"
	FieldIngredients Field = "ingredients"
	FieldImage       Field = "image"
)

// fieldAliases maps accepted spellings to fields.
var fieldAliases = map[string]Field{
	"name":        FieldName,
	"title":       FieldName,
	"description": FieldDescription,
	"desc":        FieldDescription,
	"ingredients": FieldIngredients,
	"ing":         FieldIngredients,
	"image":       FieldImage,
	"img":         FieldImage,
}

// ParseField converts a field name or alias to a Field.
func ParseField(name string) (Field, error) {
	if f, ok := fieldAliases[name]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// ViewState is the snapshot the status bar renders.
type ViewState struct {
	Mode      Mode
	DraftName string
	Query     string
	Visible   int
	Total     int
}
