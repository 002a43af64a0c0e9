// Package types defines core data structures for the dna decision graph.
package types

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Decision represents a single decision record: YAML frontmatter plus a
// markdown body, loaded from either the constitution or project partition.
type Decision struct {
	ID        string   `yaml:"id" json:"id"`
	Title     string   `yaml:"title" json:"title"`
	Date      string   `yaml:"date" json:"date,omitempty"`
	Level     int      `yaml:"level" json:"level"`
	State     State    `yaml:"state" json:"state"`
	Stakes    Stakes   `yaml:"stakes" json:"stakes,omitempty"`
	DependsOn []DepRef `yaml:"depends_on" json:"depends_on,omitempty"`

	// Attached at load time, never serialized into the record itself.
	Scope    Scope  `yaml:"-" json:"scope,omitempty"`
	Body     string `yaml:"-" json:"-"`
	FilePath string `yaml:"-" json:"-"`
}

// Deps returns the decision's dependency list as flat ID strings.
// The DepRef union is normalized at parse time, so this is a plain projection.
func (d *Decision) Deps() []string {
	if len(d.DependsOn) == 0 {
		return nil
	}
	ids := make([]string, 0, len(d.DependsOn))
	for _, ref := range d.DependsOn {
		if ref.ID != "" {
			ids = append(ids, ref.ID)
		}
	}
	return ids
}

// DependsDirectlyOn reports whether id appears in the decision's dependency list.
func (d *Decision) DependsDirectlyOn(id string) bool {
	for _, ref := range d.DependsOn {
		if ref.ID == id {
			return true
		}
	}
	return false
}

// DepRef is a dependency reference. Two historical shapes exist in record
// files: a bare ID string, and a mapping carrying at least an "id" key.
// Both normalize to the ID; only the ID participates in graph algorithms.
type DepRef struct {
	ID string
}

// UnmarshalYAML accepts either a scalar ID or a mapping with an id key.
func (r *DepRef) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return value.Decode(&r.ID)
	case yaml.MappingNode:
		var m struct {
			ID string `yaml:"id"`
		}
		if err := value.Decode(&m); err != nil {
			return err
		}
		if m.ID == "" {
			return fmt.Errorf("depends_on mapping entry is missing an id key")
		}
		r.ID = m.ID
		return nil
	}
	return fmt.Errorf("depends_on entry must be an ID string or a mapping with an id key")
}

// MarshalYAML emits the normalized form (a bare ID string).
func (r DepRef) MarshalYAML() (interface{}, error) {
	return r.ID, nil
}

// DepRefs builds a normalized dependency list from flat ID strings.
func DepRefs(ids []string) []DepRef {
	if len(ids) == 0 {
		return nil
	}
	refs := make([]DepRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, DepRef{ID: id})
	}
	return refs
}

// State represents the lifecycle state of a decision
type State string

// Decision state constants
const (
	StateSuggested  State = "suggested"
	StateCommitted  State = "committed"
	StateSuperseded State = "superseded"
)

// IsValid checks if the state value is valid
func (s State) IsValid() bool {
	switch s {
	case StateSuggested, StateCommitted, StateSuperseded:
		return true
	}
	return false
}

// CanTransition reports whether the lifecycle transition from s to next is
// legal. Same-state is a no-op and always legal. The lattice is monotone:
// suggested -> committed, suggested -> superseded, committed -> superseded.
func (s State) CanTransition(next State) bool {
	if s == next {
		return true
	}
	switch s {
	case StateSuggested:
		return next == StateCommitted || next == StateSuperseded
	case StateCommitted:
		return next == StateSuperseded
	}
	return false
}

// Stakes represents the optional stakes rating of a decision
type Stakes string

// Stakes constants
const (
	StakesHigh   Stakes = "high"
	StakesMedium Stakes = "medium"
	StakesLow    Stakes = "low"
)

// IsValid checks if the stakes value is valid. Empty is allowed (optional field).
func (s Stakes) IsValid() bool {
	switch s {
	case "", StakesHigh, StakesMedium, StakesLow:
		return true
	}
	return false
}

// Scope identifies which partition a decision was loaded from.
type Scope string

// Scope constants. Constitution is the upstream, authoritative partition;
// project decisions may depend on constitution decisions, never the reverse.
const (
	ScopeConstitution Scope = "constitution"
	ScopeProject      Scope = "project"
)

// Hierarchy levels. Lower is more foundational.
const (
	MinLevel = 1
	MaxLevel = 4
)

var levelNames = map[int]string{
	1: "Identity",
	2: "Direction",
	3: "Strategy",
	4: "Tactics",
}

// ValidLevel checks if the level is within the hierarchy range.
func ValidLevel(level int) bool {
	return level >= MinLevel && level <= MaxLevel
}

// LevelName returns the human name for a hierarchy level, or "?" if unknown.
func LevelName(level int) string {
	if name, ok := levelNames[level]; ok {
		return name
	}
	return "?"
}

// IDPrefix is the decision ID family prefix.
const IDPrefix = "DEC-"

var idPattern = regexp.MustCompile(`^DEC-\d{3}$`)

// ValidID checks that an ID matches the DEC-NNN format (3 digits).
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// RequiredSections are the body sections every decision should carry as
// literal "## Name" markdown headings.
var RequiredSections = []string{"Decision", "Reasoning", "Assumptions", "Tradeoffs"}

// SearchSections are the body sections the search command inspects.
// Detail is optional and not required by the validator.
var SearchSections = []string{"Decision", "Reasoning", "Assumptions", "Tradeoffs", "Detail"}

// SortedIDs returns the keys of a decision map in ascending ID order.
// All enumerations are ID-ordered unless a specific ranking applies.
func SortedIDs(nodes map[string]*Decision) []string {
	ids := make([]string, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FormatDeps renders a dependency list for display, "[]" when empty.
func FormatDeps(ids []string) string {
	if len(ids) == 0 {
		return "[]"
	}
	return strings.Join(ids, ", ")
}
