// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package keywords holds the keyword rules used to locate prospectus sections.
// A Table is immutable once built; callers receive copies from Rule.
package keywords

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/prospectus-splitter/pkg/types"
)

// Rule describes how one extraction type is located.
//
// Keywords is priority ordered: the first set that matches any page wins.
// All substrings of a set must appear on the page. Stop and Anti are flattened
// when matched: any single substring of any set is enough.
type Rule struct {
	Keywords [][]string `json:"keywords" yaml:"keywords"`
	Stop     [][]string `json:"stop,omitempty" yaml:"stop,omitempty"`
	Anti     [][]string `json:"anti,omitempty" yaml:"anti,omitempty"`
}

// Table maps each extraction type to its rule.
type Table struct {
	rules map[types.ExtractionType]Rule
}

// Rule returns a deep copy of the rule for t.
func (tb Table) Rule(t types.ExtractionType) (Rule, bool) {
	r, ok := tb.rules[t]
	if !ok {
		return Rule{}, false
	}
	return Rule{
		Keywords: cloneSets(r.Keywords),
		Stop:     cloneSets(r.Stop),
		Anti:     cloneSets(r.Anti),
	}, true
}

// Rules returns a copy of every rule, keyed by type.
func (tb Table) Rules() map[types.ExtractionType]Rule {
	out := make(map[types.ExtractionType]Rule, len(tb.rules))
	for t := range tb.rules {
		out[t], _ = tb.Rule(t)
	}
	return out
}

// New builds a Table from rules. Keywords are lowercased and trimmed; empty
// substrings and empty sets are dropped. Every known extraction type must have
// at least one keyword set.
func New(rules map[types.ExtractionType]Rule) (Table, error) {
	tb := Table{rules: make(map[types.ExtractionType]Rule, len(rules))}
	for t, r := range rules {
		if !t.Valid() {
			return Table{}, fmt.Errorf("unknown extraction type %q", t)
		}
		norm := Rule{
			Keywords: normalizeSets(r.Keywords),
			Stop:     normalizeSets(r.Stop),
			Anti:     normalizeSets(r.Anti),
		}
		if len(norm.Keywords) == 0 {
			return Table{}, fmt.Errorf("extraction type %s has no keyword sets", t)
		}
		tb.rules[t] = norm
	}
	for _, t := range types.AllExtractionTypes {
		if _, ok := tb.rules[t]; !ok {
			return Table{}, fmt.Errorf("extraction type %s has no rule", t)
		}
	}
	return tb, nil
}

// Default returns the built-in rules for Indonesian IPO prospectuses.
func Default() Table {
	tb, err := New(defaultRules())
	if err != nil {
		panic(fmt.Sprintf("keywords: invalid default rules: %v", err))
	}
	return tb
}

// rulesFile is the YAML layout of a rules file.
type rulesFile struct {
	Rules map[types.ExtractionType]Rule `yaml:"rules"`
}

// LoadFile reads a YAML rules file. Types present in the file replace the
// default rule entirely; types absent keep their default.
func LoadFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("reading rules file: %w", err)
	}
	var rf rulesFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return Table{}, fmt.Errorf("parsing rules file %s: %w", path, err)
	}
	merged := defaultRules()
	for t, r := range rf.Rules {
		merged[t] = r
	}
	tb, err := New(merged)
	if err != nil {
		return Table{}, fmt.Errorf("validating rules file %s: %w", path, err)
	}
	return tb, nil
}

// MarshalYAML renders the table in the rules file layout, so the output of
// the rules command can be edited and fed back with --rules.
func (tb Table) MarshalYAML() (any, error) {
	return rulesFile{Rules: tb.Rules()}, nil
}

func normalizeSets(sets [][]string) [][]string {
	var out [][]string
	for _, set := range sets {
		var norm []string
		for _, kw := range set {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				norm = append(norm, kw)
			}
		}
		if len(norm) > 0 {
			out = append(out, norm)
		}
	}
	return out
}

func cloneSets(sets [][]string) [][]string {
	if sets == nil {
		return nil
	}
	out := make([][]string, len(sets))
	for i, set := range sets {
		out[i] = append([]string(nil), set...)
	}
	return out
}
