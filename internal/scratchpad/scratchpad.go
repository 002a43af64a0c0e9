// Package scratchpad manages pre-decision jottings stored in
// .dna/scratchpad.json. Entries are append-only; maturing one records the
// decision it graduated into instead of deleting it.
package scratchpad

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/steveyegge/dna/internal/graph"
)

const FileName = "scratchpad.json"

// EntryType classifies a scratchpad entry.
type EntryType string

const (
	TypeIdea       EntryType = "idea"
	TypeConstraint EntryType = "constraint"
	TypeQuestion   EntryType = "question"
	TypeConcern    EntryType = "concern"
)

// Types lists the valid entry types in sorted order.
var Types = []EntryType{TypeConcern, TypeConstraint, TypeIdea, TypeQuestion}

func (t EntryType) IsValid() bool {
	switch t {
	case TypeIdea, TypeConstraint, TypeQuestion, TypeConcern:
		return true
	}
	return false
}

// Entry is one scratchpad item. MaturedTo is empty until the entry
// graduates to a decision.
type Entry struct {
	ID        string    `json:"id"`
	Type      EntryType `json:"type"`
	Content   string    `json:"content"`
	Created   string    `json:"created"`
	Links     []string  `json:"links"`
	MaturedTo string    `json:"matured_to"`
}

// Active reports whether the entry has not yet matured.
func (e *Entry) Active() bool {
	return e.MaturedTo == ""
}

type fileFormat struct {
	Entries []Entry `json:"entries"`
}

// Store reads and writes scratchpad entries under a .dna directory.
type Store struct {
	dir string

	// now is swappable for tests.
	now func() time.Time
}

func NewStore(dnaDir string) *Store {
	return &Store{dir: dnaDir, now: time.Now}
}

func (s *Store) path() string {
	return filepath.Join(s.dir, FileName)
}

// Load returns all entries; a missing file is an empty scratchpad.
func (s *Store) Load() ([]Entry, error) {
	data, err := os.ReadFile(s.path()) // #nosec G304 - controlled path under .dna
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading scratchpad: %w", err)
	}
	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing scratchpad: %w", err)
	}
	return f.Entries, nil
}

func (s *Store) save(entries []Entry) error {
	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return fmt.Errorf("creating %s: %w", s.dir, err)
	}
	data, err := json.MarshalIndent(fileFormat{Entries: entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling scratchpad: %w", err)
	}
	data = append(data, '\n')

	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing scratchpad: %w", err)
	}
	if err := os.Rename(tmp, s.path()); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing scratchpad: %w", err)
	}
	return nil
}

var spIDPattern = regexp.MustCompile(`^SP-(\d{3})$`)

// NextID allocates the next SP-NNN after the highest existing one.
func NextID(entries []Entry) string {
	max := 0
	for _, e := range entries {
		if m := spIDPattern.FindStringSubmatch(e.ID); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > max {
				max = n
			}
		}
	}
	return fmt.Sprintf("SP-%03d", max+1)
}

// Add appends a new entry. Links must name decisions that exist in the
// graph; g may be nil only when links is empty.
func (s *Store) Add(entryType EntryType, content string, links []string, g *graph.Graph) (*Entry, error) {
	if !entryType.IsValid() {
		return nil, fmt.Errorf("invalid type '%s' (must be one of: %s)", entryType, typeList())
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("content string is required")
	}
	for _, link := range links {
		if g == nil || g.Get(link) == nil {
			return nil, fmt.Errorf("linked decision %s not found in graph", link)
		}
	}

	entries, err := s.Load()
	if err != nil {
		return nil, err
	}

	entry := Entry{
		ID:      NextID(entries),
		Type:    entryType,
		Content: content,
		Created: s.now().Format("2006-01-02"),
		Links:   links,
	}
	entries = append(entries, entry)
	if err := s.save(entries); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Mature marks an entry as graduated into decID, which must exist in the
// graph. An entry matures at most once.
func (s *Store) Mature(spID, decID string, g *graph.Graph) (*Entry, error) {
	entries, err := s.Load()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range entries {
		if entries[i].ID == spID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%s not found in scratchpad", spID)
	}
	if entries[idx].MaturedTo != "" {
		return nil, fmt.Errorf("%s already matured to %s", spID, entries[idx].MaturedTo)
	}
	if g.Get(decID) == nil {
		return nil, fmt.Errorf("%s not found in graph", decID)
	}

	entries[idx].MaturedTo = decID
	if err := s.save(entries); err != nil {
		return nil, err
	}
	return &entries[idx], nil
}

// Partition splits entries into active and matured, optionally keeping
// only one type.
func Partition(entries []Entry, filterType EntryType) (active, matured []Entry) {
	for _, e := range entries {
		if filterType != "" && e.Type != filterType {
			continue
		}
		if e.Active() {
			active = append(active, e)
		} else {
			matured = append(matured, e)
		}
	}
	return active, matured
}

// Summary returns a one-line count of active entries by type, or ""
// when nothing is active.
func Summary(entries []Entry) string {
	active, _ := Partition(entries, "")
	if len(active) == 0 {
		return ""
	}
	counts := make(map[string]int)
	for _, e := range active {
		t := string(e.Type)
		if t == "" {
			t = "unknown"
		}
		counts[t]++
	}
	names := make([]string, 0, len(counts))
	for t := range counts {
		names = append(names, t)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, t := range names {
		parts = append(parts, fmt.Sprintf("%d %s(s)", counts[t], t))
	}
	return fmt.Sprintf("%d active — %s", len(active), strings.Join(parts, ", "))
}

func typeList() string {
	parts := make([]string, 0, len(Types))
	for _, t := range Types {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, ", ")
}
