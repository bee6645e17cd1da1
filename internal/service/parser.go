package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/pageza/masterchef/backend/internal/model"
)

// ExtractedRecipe is the JSON object the AI is asked to produce
type ExtractedRecipe struct {
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// WebChunk is a grounding chunk reported by the AI service
type WebChunk struct {
	URI   string
	Title string
}

var (
	leadingFence  = regexp.MustCompile("(?is)^```(?:json)?\\s*")
	trailingFence = regexp.MustCompile("(?s)\\s*```$")
)

// CleanResponse trims the raw response and strips markdown code fences around it
func CleanResponse(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(strings.TrimPrefix(s, "\uFEFF"))
	s = leadingFence.ReplaceAllString(s, "")
	s = trailingFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// ExtractJSONObject returns the text between the first '{' and the last '}'
func ExtractJSONObject(text string) (string, error) {
	start := strings.Index(text, "{")
	if start == -1 {
		return "", errors.New("no opening brace in response")
	}
	end := strings.LastIndex(text, "}")
	if end == -1 {
		return "", errors.New("no closing brace in response")
	}
	if end < start {
		return "", errors.New("closing brace precedes opening brace")
	}
	return text[start : end+1], nil
}

// ParseRecipeResponse decodes and validates the recipe in a raw AI response
func ParseRecipeResponse(raw string) (*ExtractedRecipe, error) {
	body, err := ExtractJSONObject(CleanResponse(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	var recipe ExtractedRecipe
	if err := json.Unmarshal([]byte(body), &recipe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	if err := ValidateRecipe(&recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ValidateRecipe normalises r in place and checks the required fields.
// Names and entries are trimmed; blank entries are dropped.
func ValidateRecipe(r *ExtractedRecipe) error {
	r.Name = strings.TrimSpace(r.Name)
	r.Ingredients = compact(r.Ingredients)
	r.Instructions = compact(r.Instructions)

	if r.Name == "" || len(r.Ingredients) == 0 || len(r.Instructions) == 0 {
		return ErrNoRecipe
	}
	return nil
}

func compact(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}

// CollectSources turns grounding chunks into sources, one per URI
func CollectSources(chunks []WebChunk) model.Sources {
	sources := make(model.Sources, 0, len(chunks))
	for _, c := range chunks {
		sources = append(sources, model.GroundingSource{URI: c.URI, Title: c.Title})
	}
	return NormalizeSources(sources)
}

// NormalizeSources drops sources without a URI, defaults blank titles to the URI
// and keeps one entry per URI: the position of its first occurrence and the
// title of its last.
func NormalizeSources(sources model.Sources) model.Sources {
	out := model.Sources{}
	index := make(map[string]int)
	for _, src := range sources {
		uri := strings.TrimSpace(src.URI)
		if uri == "" {
			continue
		}
		title := strings.TrimSpace(src.Title)
		if title == "" {
			title = uri
		}
		src = model.GroundingSource{URI: uri, Title: title}
		if i, ok := index[uri]; ok {
			out[i] = src
			continue
		}
		index[uri] = len(out)
		out = append(out, src)
	}
	return out
}
