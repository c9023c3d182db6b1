package domain

import "context"

// RecipeStore holds the ordered recipe collection. Implementations
// assign ids on Add and copy values in and out.
type RecipeStore interface {
	Add(r Recipe) Recipe
	Update(id string, r Recipe) bool
	Remove(id string) int
	Get(id string) (Recipe, error)
	List() []Recipe
	Len() int
}

// CommandParser converts raw user input into structured commands.
type CommandParser interface {
	Parse(ctx context.Context, input string) (*Command, error)
}

// Notifier delivers messages to the user. Implementations can write to
// stdout or to the terminal UI scrollback.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}

// ViewStateSource provides the current view state for rendering.
type ViewStateSource interface {
	ViewState() ViewState
}
