package fallback

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Candidate is one entry of the ordered model fallback table.
type Candidate struct {
	ID         string `yaml:"id" json:"id"`
	MaxTokens  int    `yaml:"max_tokens" json:"max_tokens"`
	Generation string `yaml:"generation" json:"generation"`
}

const (
	// FloorTokens is the conservative ceiling every candidate accepts.
	FloorTokens = 4096

	extendedTokens = 8192
)

// DefaultCandidates is ordered newest/most capable first, cheapest last.
var DefaultCandidates = []Candidate{
	{ID: "claude-3-5-sonnet-20241022", MaxTokens: extendedTokens, Generation: "3.5"},
	{ID: "claude-3-5-sonnet-20240620", MaxTokens: extendedTokens, Generation: "3.5"},
	{ID: "claude-3-opus-20240229", MaxTokens: FloorTokens, Generation: "3"},
	{ID: "claude-3-sonnet-20240229", MaxTokens: FloorTokens, Generation: "3"},
	{ID: "claude-3-haiku-20240307", MaxTokens: FloorTokens, Generation: "3"},
}

type candidateFile struct {
	Candidates []Candidate `yaml:"candidates"`
}

// LoadCandidates reads an ordered candidate table from a YAML file:
//
//	candidates:
//	  - id: claude-3-5-sonnet-20241022
//	    max_tokens: 8192
//	    generation: "3.5"
func LoadCandidates(path string) ([]Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read candidates file: %w", err)
	}

	var file candidateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse candidates file: %w", err)
	}
	if err := ValidateCandidates(file.Candidates); err != nil {
		return nil, err
	}
	return file.Candidates, nil
}

// ValidateCandidates rejects empty tables, blank ids, duplicates and non-positive ceilings.
func ValidateCandidates(candidates []Candidate) error {
	if len(candidates) == 0 {
		return errors.New("candidate table is empty")
	}
	seen := make(map[string]struct{}, len(candidates))
	for i, c := range candidates {
		if c.ID == "" {
			return fmt.Errorf("candidate %d: id is required", i)
		}
		if c.MaxTokens <= 0 {
			return fmt.Errorf("candidate %s: max_tokens must be positive", c.ID)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("candidate %s: duplicate id", c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}
