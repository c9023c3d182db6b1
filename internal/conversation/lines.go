// lines.go centralises every user-facing message. Keep lines short and
// direct.
package conversation

import (
	"fmt"
	"math/rand"
	"strings"
)

// ── Greeting / Global ────────────────────────────────────────────

func LineWelcome(total int) string {
	return fmt.Sprintf("%d recipes on the shelf. Type 'help' to see what you can do.", total)
}

func LineBye() string {
	return "Bye."
}

func LineUnknown(input string) string {
	return fmt.Sprintf("Didn't catch that: %s.", input)
}

// ── Catalog ──────────────────────────────────────────────────────

func LineNoRecipes(query string) string {
	if query != "" {
		return fmt.Sprintf("No recipes match %q. Type 'clear' to see everything.", query)
	}
	return "The catalog is empty. Type 'add' to create a recipe."
}

func LineSearchSet(query string, visible int) string {
	if query == "" {
		return "Search cleared."
	}
	return fmt.Sprintf("%d recipe(s) match %q.", visible, query)
}

func LineInvalidRef(ref string) string {
	return fmt.Sprintf("No recipe %s. Use a card number from the list or a recipe id.", ref)
}

func LineDeleted(name string) string {
	return fmt.Sprintf("Deleted %s.", name)
}

func LineToggled(name string, shown bool) string {
	if shown {
		return fmt.Sprintf("Showing ingredients for %s.", name)
	}
	return fmt.Sprintf("Hiding ingredients for %s.", name)
}

// ── Draft ────────────────────────────────────────────────────────

func LineDraftStarted(editing bool, name string) string {
	if editing {
		return fmt.Sprintf("Editing %s. Set fields with 'name ...', 'description ...', 'ingredients a, b', 'image <file>'. 'save' or 'cancel' when done.", name)
	}
	return "New recipe. Set fields with 'name ...', 'description ...', 'ingredients a, b', 'image <file>'. 'save' or 'cancel' when done."
}

func LineDraftOpen() string {
	return "Finish the open recipe first: 'save' or 'cancel'."
}

func LineNoDraft() string {
	return "Nothing is open. Type 'add' or 'edit <n>' first."
}

func LineFieldSet(field string) string {
	return fmt.Sprintf("%s updated.", capitalize(field))
}

func LineCancelled() string {
	return "Discarded."
}

var savedLines = []string{
	"Saved %s.",
	"%s is on the shelf.",
	"Got it. %s saved.",
}

func LineSaved(name string) string {
	if name == "" {
		name = "Untitled recipe"
	}
	return fmt.Sprintf(savedLines[rand.Intn(len(savedLines))], name)
}

// ── Images ───────────────────────────────────────────────────────

func LineImageLoading(path string) string {
	return fmt.Sprintf("Loading image %s...", path)
}

func LineImageReady() string {
	return "Image attached to the draft."
}

func LineImageFailed(err error) string {
	return fmt.Sprintf("Couldn't use that image: %v. The draft image is unchanged.", err)
}

func LineImageBusy() string {
	return "Still working on earlier images. Try again in a moment."
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
