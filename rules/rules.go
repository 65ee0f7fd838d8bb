// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rules

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

// Rules is the contents of the rules file
type Rules struct {
	Title      string     `yaml:"title" json:"title"`
	Sections   []Section  `yaml:"sections" json:"sections"`
	Categories []Category `yaml:"categories" json:"categories"`
	Jury       []Juror    `yaml:"jury" json:"jury"`
}

type Section struct {
	Heading string   `yaml:"heading" json:"heading"`
	Items   []string `yaml:"items" json:"items"`
}

type Category struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Questions   []string `yaml:"questions,omitempty" json:"questions,omitempty"`
}

// Juror email addresses are not exposed over JSON
type Juror struct {
	Name  string `yaml:"name" json:"name"`
	Email string `yaml:"email" json:"-"`
}

// Default is used when no rules file exists
func Default() *Rules {
	return &Rules{
		Title: "FiesTA Awwards",
		Sections: []Section{
			{
				Heading: "Nominating",
				Items: []string{
					"Sign in to nominate a TA or anyone who made your semester better.",
					"Nominations close at the deadline shown in the header.",
				},
			},
			{
				Heading: "Voting",
				Items: []string{
					"Each signed-in user can vote once per nomination.",
					"Community voting closes together with nominations.",
					"After the deadline the jury panel scores every nomination.",
				},
			},
		},
		Categories: []Category{
			{Name: "Best TA"},
			{Name: "Best Mentor"},
			{Name: "Rising Star"},
		},
	}
}

// Parse decodes a rules document. Missing fields fall back to Default.
func Parse(data []byte) (*Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}

	def := Default()
	if r.Title == "" {
		r.Title = def.Title
	}
	if len(r.Sections) == 0 {
		r.Sections = def.Sections
	}
	if len(r.Categories) == 0 {
		r.Categories = def.Categories
	}

	for i, j := range r.Jury {
		if strings.TrimSpace(j.Email) == "" {
			return nil, fmt.Errorf("juror %d (%q) has no email", i, j.Name)
		}
		r.Jury[i].Email = strings.ToLower(strings.TrimSpace(j.Email))
	}

	return &r, nil
}

// Load reads the rules file. A missing file yields Default.
func Load(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("rules file not found, using defaults", "path", path)
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	return Parse(data)
}

// IsJuror reports whether email belongs to a jury member (case-insensitive)
func (r *Rules) IsJuror(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, j := range r.Jury {
		if j.Email == email {
			return true
		}
	}
	return false
}

// HasCategory reports whether name is a configured category (case-insensitive)
func (r *Rules) HasCategory(name string) bool {
	for _, c := range r.Categories {
		if strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

// Store holds the current rules and swaps them atomically on reload
type Store struct {
	current atomic.Pointer[Rules]
}

func NewStore(r *Rules) *Store {
	s := &Store{}
	s.current.Store(r)
	return s
}

func (s *Store) Get() *Rules {
	return s.current.Load()
}

func (s *Store) Set(r *Rules) {
	s.current.Store(r)
}
