package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hammamikhairi/recipebox/internal/conversation"
	"github.com/hammamikhairi/recipebox/internal/display"
	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/engine"
	"github.com/hammamikhairi/recipebox/internal/imageenc"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

// screen is the part of display.UI the app writes to.
type screen interface {
	Println(a ...interface{})
	PrintChat(text string)
	PrintHeader(text string)
	PrintHint(text string)
	PrintUrgent(text string)
	PrintBlock(text string)
	Quit()
}

// imageQueue accepts background image encodes.
type imageQueue interface {
	Submit(job imageenc.Job) error
}

type cliApp struct {
	ctrl     *engine.Controller
	parser   domain.CommandParser
	notifier domain.Notifier
	images   imageQueue
	log      *logger.Logger
	ui       screen
	styled   bool
	width    func() int
}

// say prints a conversational line.
func (a *cliApp) say(ctx context.Context, text string) {
	if err := a.notifier.Notify(ctx, text); err != nil {
		a.log.Error("notify: %v", err)
	}
}

// sayUrgent prints an error line.
func (a *cliApp) sayUrgent(ctx context.Context, text string) {
	if err := a.notifier.NotifyUrgent(ctx, text); err != nil {
		a.log.Error("notify: %v", err)
	}
}

func (a *cliApp) run(ctx context.Context, input <-chan string) {
	a.say(ctx, conversation.LineWelcome(len(a.ctrl.ListAll())))
	a.ui.Println("")
	a.showCards()

	for {
		var line string
		var ok bool

		select {
		case <-ctx.Done():
			return
		case line, ok = <-input:
			if !ok {
				return
			}
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cmd, err := a.parser.Parse(ctx, line)
		if err != nil {
			a.log.Error("parsing input: %v", err)
			continue
		}

		a.log.Debug("command: %s (field=%q payload=%q)", cmd.Type, cmd.Field, cmd.Payload)
		if quit := a.handleCommand(ctx, cmd); quit {
			return
		}
	}
}

// handleCommand executes one command. Returns true when the user quits.
func (a *cliApp) handleCommand(ctx context.Context, cmd *domain.Command) bool {
	switch cmd.Type {
	case domain.CommandHelp:
		a.showHelp()
	case domain.CommandList:
		a.showCards()
	case domain.CommandSearch:
		a.search(ctx, cmd.Payload)
	case domain.CommandAdd:
		a.startAdd(ctx)
	case domain.CommandEdit:
		a.startEdit(ctx, cmd.Payload)
	case domain.CommandDelete:
		a.deleteRecipe(ctx, cmd.Payload)
	case domain.CommandToggle:
		a.toggle(ctx, cmd.Payload)
	case domain.CommandShow:
		a.show(ctx, cmd.Payload)
	case domain.CommandSetField:
		a.setField(ctx, cmd.Field, cmd.Payload)
	case domain.CommandCommit:
		a.commit(ctx)
	case domain.CommandCancel:
		a.cancel(ctx)
	case domain.CommandDraft:
		a.showDraft(ctx)
	case domain.CommandQuit:
		a.say(ctx, conversation.LineBye())
		a.ui.Quit()
		return true
	default:
		a.say(ctx, conversation.LineUnknown(cmd.Payload))
	}
	return false
}

// ── Catalog ──────────────────────────────────────────────────────

func (a *cliApp) showCards() {
	visible := a.ctrl.ListVisible()
	if len(visible) == 0 {
		a.ui.PrintHint(conversation.LineNoRecipes(a.ctrl.SearchQuery()))
		return
	}
	for i, r := range visible {
		a.ui.PrintBlock(display.RenderCard(i+1, r, a.ctrl.IngredientsShown(r.ID), a.width()))
	}
}

func (a *cliApp) search(ctx context.Context, query string) {
	a.ctrl.SetSearchQuery(query)
	a.say(ctx, conversation.LineSearchSet(query, len(a.ctrl.ListVisible())))
	a.showCards()
}

// resolveRef finds a recipe by 1-based position in the visible list,
// falling back to its id.
func resolveRef(ctrl *engine.Controller, ref string) (domain.Recipe, bool) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		visible := ctrl.ListVisible()
		if n >= 1 && n <= len(visible) {
			return visible[n-1], true
		}
	}
	r, err := ctrl.Recipe(ref)
	if err != nil {
		return domain.Recipe{}, false
	}
	return r, true
}

func (a *cliApp) lookup(ctx context.Context, ref string) (domain.Recipe, bool) {
	r, ok := resolveRef(a.ctrl, ref)
	if !ok {
		a.say(ctx, conversation.LineInvalidRef(ref))
	}
	return r, ok
}

func (a *cliApp) deleteRecipe(ctx context.Context, ref string) {
	r, ok := a.lookup(ctx, ref)
	if !ok {
		return
	}
	if !a.ctrl.DeleteRecipe(r.ID) {
		a.say(ctx, conversation.LineInvalidRef(ref))
		return
	}
	a.say(ctx, conversation.LineDeleted(r.Name))
}

func (a *cliApp) toggle(ctx context.Context, ref string) {
	r, ok := a.lookup(ctx, ref)
	if !ok {
		return
	}
	shown, ok := a.ctrl.ToggleIngredients(r.ID)
	if !ok {
		a.say(ctx, conversation.LineInvalidRef(ref))
		return
	}
	a.say(ctx, conversation.LineToggled(r.Name, shown))
	a.ui.PrintBlock(display.RenderCard(a.indexOf(r.ID), r, shown, a.width()))
}

// indexOf returns the 1-based visible position of id, or 0.
func (a *cliApp) indexOf(id string) int {
	for i, r := range a.ctrl.ListVisible() {
		if r.ID == id {
			return i + 1
		}
	}
	return 0
}

func (a *cliApp) show(ctx context.Context, ref string) {
	r, ok := a.lookup(ctx, ref)
	if !ok {
		return
	}
	a.ui.PrintBlock(display.RenderMarkdown(display.RecipeMarkdown(r), a.styled))
}

// ── Draft ────────────────────────────────────────────────────────

func (a *cliApp) startAdd(ctx context.Context) {
	if _, err := a.ctrl.StartAdd(); err != nil {
		a.draftError(ctx, err)
		return
	}
	a.say(ctx, conversation.LineDraftStarted(false, ""))
	a.showDraft(ctx)
}

func (a *cliApp) startEdit(ctx context.Context, ref string) {
	if a.ctrl.Mode() != domain.ModeClosed {
		a.say(ctx, conversation.LineDraftOpen())
		return
	}
	r, ok := a.lookup(ctx, ref)
	if !ok {
		return
	}
	_, ok, err := a.ctrl.StartEdit(r.ID)
	if err != nil {
		a.draftError(ctx, err)
		return
	}
	if !ok {
		a.say(ctx, conversation.LineInvalidRef(ref))
		return
	}
	a.say(ctx, conversation.LineDraftStarted(true, r.Name))
	a.showDraft(ctx)
}

func (a *cliApp) setField(ctx context.Context, field domain.Field, value string) {
	if field == domain.FieldImage && a.loadImage(ctx, strings.TrimSpace(value)) {
		return
	}
	if err := a.ctrl.SetDraftField(field, value); err != nil {
		a.draftError(ctx, err)
		return
	}
	a.say(ctx, conversation.LineFieldSet(string(field)))
}

// loadImage queues path for encoding if it names a local file. Returns
// false when value should be stored as-is (a URL, a data URL, or blank).
func (a *cliApp) loadImage(ctx context.Context, path string) bool {
	if path == "" || strings.HasPrefix(path, "data:") || strings.Contains(path, "://") {
		return false
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	token, err := a.ctrl.BeginImageLoad()
	if err != nil {
		a.draftError(ctx, err)
		return true
	}
	if err := a.images.Submit(imageenc.Job{Path: path, Token: token}); err != nil {
		if errors.Is(err, imageenc.ErrQueueFull) {
			a.say(ctx, conversation.LineImageBusy())
		} else {
			a.sayUrgent(ctx, conversation.LineImageFailed(err))
		}
		return true
	}
	a.say(ctx, conversation.LineImageLoading(path))
	return true
}

func (a *cliApp) commit(ctx context.Context) {
	saved, err := a.ctrl.CommitDraft()
	if err != nil {
		a.draftError(ctx, err)
		return
	}
	a.say(ctx, conversation.LineSaved(saved.Name))
	a.showCards()
}

func (a *cliApp) cancel(ctx context.Context) {
	if a.ctrl.Mode() == domain.ModeClosed {
		a.say(ctx, conversation.LineNoDraft())
		return
	}
	a.ctrl.CancelEdit()
	a.say(ctx, conversation.LineCancelled())
}

func (a *cliApp) showDraft(ctx context.Context) {
	d, ok := a.ctrl.Draft()
	if !ok {
		a.say(ctx, conversation.LineNoDraft())
		return
	}
	a.ui.PrintBlock(display.RenderDraft(d, a.width()))
	if err := a.ctrl.ImageError(); err != nil {
		a.ui.PrintHint(conversation.LineImageFailed(err))
	}
}

func (a *cliApp) draftError(ctx context.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrDraftOpen):
		a.say(ctx, conversation.LineDraftOpen())
	case errors.Is(err, domain.ErrNoDraft):
		a.say(ctx, conversation.LineNoDraft())
	default:
		a.log.Error("draft: %v", err)
		a.sayUrgent(ctx, fmt.Sprintf("Error: %v", err))
	}
}

// imageDone applies a finished encode. Runs on the encoder goroutine.
func (a *cliApp) imageDone(ctx context.Context, res imageenc.Result) {
	if res.Err != nil {
		if a.ctrl.ImageFailed(res.Job.Token, res.Err) {
			a.sayUrgent(ctx, conversation.LineImageFailed(res.Err))
		}
		return
	}
	if a.ctrl.ApplyImage(res.Job.Token, res.DataURL) {
		a.say(ctx, conversation.LineImageReady())
	}
}

func (a *cliApp) showHelp() {
	a.ui.PrintHeader("Browse:")
	a.ui.PrintHint("list / ls            Show the recipe cards")
	a.ui.PrintHint("search <text>        Filter cards by name (also /text)")
	a.ui.PrintHint("clear                Clear the search")
	a.ui.PrintHint("toggle <n>           Show or hide a card's ingredients")
	a.ui.PrintHint("show <n>             Show full recipe details")
	a.ui.PrintHint("delete <n>           Delete a recipe")
	a.ui.Println("")
	a.ui.PrintHeader("Edit:")
	a.ui.PrintHint("add / new            Start a new recipe")
	a.ui.PrintHint("edit <n>             Edit a recipe")
	a.ui.PrintHint("name <text>          Set the name")
	a.ui.PrintHint("description <text>   Set the description")
	a.ui.PrintHint("ingredients a, b     Set ingredients, separated by \", \"")
	a.ui.PrintHint("image <file|url>     Attach an image file or set a URL")
	a.ui.PrintHint("draft                Show the open recipe")
	a.ui.PrintHint("save / cancel        Finish editing")
	a.ui.Println("")
	a.ui.PrintHint("<n> is a card number from the list or a recipe id. 'quit' exits.")
}
