// Package conversation provides command parsing and user notification
// for the interactive catalog.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

// Compile-time interface check.
var _ domain.CommandParser = (*KeywordParser)(nil)

// KeywordParser matches user input to commands using keywords and
// simple patterns.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex   *regexp.Regexp
	command domain.CommandType
}

// NewKeywordParser creates a keyword-based command parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	// Rules with an argument capture it in group 1.
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(?:list|ls|recipes|cards)$`), domain.CommandList},
		{regexp.MustCompile(`(?i)^(?:search|find|filter)(?:\s+(.*))?$`), domain.CommandSearch},
		{regexp.MustCompile(`(?i)^/(.*)$`), domain.CommandSearch},
		{regexp.MustCompile(`(?i)^(?:clear|reset)$`), domain.CommandSearch},
		{regexp.MustCompile(`(?i)^(?:add|new|create)$`), domain.CommandAdd},
		{regexp.MustCompile(`(?i)^(?:edit|e)\s+(\S+)$`), domain.CommandEdit},
		{regexp.MustCompile(`(?i)^(?:delete|del|rm|remove)\s+(\S+)$`), domain.CommandDelete},
		{regexp.MustCompile(`(?i)^(?:toggle|t|view)\s+(\S+)$`), domain.CommandToggle},
		{regexp.MustCompile(`(?i)^(?:show|open|details)\s+(\S+)$`), domain.CommandShow},
		{regexp.MustCompile(`(?i)^(?:save|commit|done|submit)$`), domain.CommandCommit},
		{regexp.MustCompile(`(?i)^(?:cancel|discard|close)$`), domain.CommandCancel},
		{regexp.MustCompile(`(?i)^(?:draft|form|preview)$`), domain.CommandDraft},
		{regexp.MustCompile(`(?i)^(?:help|h|\?)$`), domain.CommandHelp},
		{regexp.MustCompile(`(?i)^(?:quit|exit|q)$`), domain.CommandQuit},
	}
	return p
}

// fieldSetter matches "name Tomato Soup", "set desc ...", "ingredients: a, b".
var fieldSetter = regexp.MustCompile(`(?is)^(?:set\s+)?([a-z]+)\s*(?::|=|\s)\s*(.*)$`)

// Parse converts user input into a command.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Command, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Command{Type: domain.CommandUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	for _, rule := range p.patterns {
		m := rule.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		p.log.Debug("matched command: %s", rule.command)
		cmd := &domain.Command{Type: rule.command}
		if len(m) > 1 {
			cmd.Payload = m[1]
		}
		return cmd, nil
	}

	// Field setters. The value keeps its inner spacing so ingredient
	// separators survive untouched.
	if m := fieldSetter.FindStringSubmatch(trimmed); m != nil {
		if field, err := domain.ParseField(strings.ToLower(m[1])); err == nil {
			return &domain.Command{Type: domain.CommandSetField, Field: field, Payload: m[2]}, nil
		}
	}

	p.log.Debug("no match, returning unknown command")
	return &domain.Command{Type: domain.CommandUnknown, Payload: trimmed}, nil
}
