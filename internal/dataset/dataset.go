// Package dataset loads the initial recipe collection from the bundled
// dataset or from a JSON, YAML, or TOML file. Loading is all-or-nothing:
// one malformed entry rejects the whole dataset.
package dataset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/recipebox/internal/domain"
)

//go:embed recipes.json
var bundled []byte

// ErrInvalidEntry is wrapped by every EntryError.
var ErrInvalidEntry = errors.New("invalid dataset entry")

// Format is a dataset encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unsupported dataset extension %q (want .json, .yaml, .yml or .toml)", filepath.Ext(path))
}

// EntryError describes why one entry was rejected.
type EntryError struct {
	Index  int    // 0-based position in the file
	ID     string // empty if the id itself is the problem
	Field  string
	Reason string
}

func (e *EntryError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("entry %d (id %q): %s: %s", e.Index, e.ID, e.Field, e.Reason)
	}
	return fmt.Sprintf("entry %d: %s: %s", e.Index, e.Field, e.Reason)
}

func (e *EntryError) Unwrap() error { return ErrInvalidEntry }

// record is the on-disk shape of one recipe.
type record struct {
	ID          any       `json:"id" yaml:"id" toml:"id"`
	Image       string    `json:"image" yaml:"image" toml:"image"`
	Name        string    `json:"name" yaml:"name" toml:"name"`
	Description string    `json:"description" yaml:"description" toml:"description"`
	Ingredients *[]string `json:"ingredients" yaml:"ingredients" toml:"ingredients"`
}

// tomlDocument wraps entries, since TOML has no top-level arrays.
type tomlDocument struct {
	Recipes []record `toml:"recipes"`
}

// Bundled returns the dataset shipped inside the binary.
func Bundled() ([]domain.Recipe, error) {
	recipes, err := Parse(bundled, FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("bundled dataset: %w", err)
	}
	return recipes, nil
}

// LoadFile reads and validates a dataset file.
func LoadFile(path string) ([]domain.Recipe, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	recipes, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return recipes, nil
}

// Parse decodes and validates a dataset in the given format.
func Parse(data []byte, format Format) ([]domain.Recipe, error) {
	records, err := decode(data, format)
	if err != nil {
		return nil, err
	}
	return validate(records)
}

func decode(data []byte, format Format) ([]record, error) {
	var records []record
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		dec.DisallowUnknownFields()
		if err := dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	case FormatTOML:
		var doc tomlDocument
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, fmt.Errorf("decoding toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("decoding toml: unknown key %q", undecoded[0].String())
		}
		records = doc.Recipes
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", format)
	}
	return records, nil
}

func validate(records []record) ([]domain.Recipe, error) {
	out := make([]domain.Recipe, 0, len(records))
	seen := make(map[string]int, len(records))

	for i, rec := range records {
		id, err := normalizeID(rec.ID)
		if err != nil {
			return nil, &EntryError{Index: i, Field: "id", Reason: err.Error()}
		}
		if prev, dup := seen[id]; dup {
			return nil, &EntryError{Index: i, ID: id, Field: "id", Reason: fmt.Sprintf("duplicates entry %d", prev)}
		}
		seen[id] = i

		if strings.TrimSpace(rec.Name) == "" {
			return nil, &EntryError{Index: i, ID: id, Field: "name", Reason: "missing"}
		}
		if rec.Ingredients == nil {
			return nil, &EntryError{Index: i, ID: id, Field: "ingredients", Reason: "missing"}
		}
		ingredients := make([]string, len(*rec.Ingredients))
		for j, ing := range *rec.Ingredients {
			if strings.TrimSpace(ing) == "" {
				return nil, &EntryError{Index: i, ID: id, Field: "ingredients", Reason: fmt.Sprintf("item %d is empty", j)}
			}
			ingredients[j] = ing
		}

		out = append(out, domain.Recipe{
			ID:          id,
			Name:        rec.Name,
			Description: rec.Description,
			Ingredients: ingredients,
			Image:       rec.Image,
		})
	}
	return out, nil
}

// normalizeID accepts string and integer ids and returns the string form.
func normalizeID(v any) (string, error) {
	switch id := v.(type) {
	case nil:
		return "", errors.New("missing")
	case string:
		if strings.TrimSpace(id) == "" {
			return "", errors.New("empty")
		}
		return id, nil
	case json.Number:
		n, err := id.Int64()
		if err != nil {
			return "", fmt.Errorf("%s is not an integer", id)
		}
		return strconv.FormatInt(n, 10), nil
	case int:
		return strconv.Itoa(id), nil
	case int64:
		return strconv.FormatInt(id, 10), nil
	case uint64:
		return strconv.FormatUint(id, 10), nil
	case float64:
		if id != math.Trunc(id) || math.IsInf(id, 0) {
			return "", fmt.Errorf("%v is not an integer", id)
		}
		return strconv.FormatInt(int64(id), 10), nil
	default:
		return "", fmt.Errorf("unsupported type %T", v)
	}
}
