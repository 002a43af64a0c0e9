package graph

import (
	"regexp"
	"strings"

	"github.com/steveyegge/dna/internal/types"
)

// SearchResult is one matching decision with the sections that matched.
type SearchResult struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Level           int         `json:"level"`
	State           types.State `json:"state"`
	Scope           types.Scope `json:"scope"`
	MatchedSections []string    `json:"matched_sections"`
}

// Search matches decisions by title and body content. Terms are
// case-insensitive and OR-matched. Results come back in ID order with the
// body sections (plus "title") that contained a term.
func (g *Graph) Search(terms []string) []SearchResult {
	lowered := make([]string, 0, len(terms))
	for _, t := range terms {
		lowered = append(lowered, strings.ToLower(t))
	}

	var results []SearchResult
	for _, id := range g.SortedIDs() {
		n := g.Nodes[id]
		title := strings.ToLower(n.Title)
		body := n.Body
		bodyLower := strings.ToLower(body)

		matched := false
		for _, term := range lowered {
			if strings.Contains(title, term) || strings.Contains(bodyLower, term) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		var sections []string
		for _, term := range lowered {
			if strings.Contains(title, term) {
				sections = append(sections, "title")
				break
			}
		}
		for _, name := range types.SearchSections {
			text := strings.ToLower(sectionText(body, name))
			for _, term := range lowered {
				if text != "" && strings.Contains(text, term) {
					sections = append(sections, name)
					break
				}
			}
		}

		results = append(results, SearchResult{
			ID:              id,
			Title:           n.Title,
			Level:           n.Level,
			State:           n.State,
			Scope:           n.Scope,
			MatchedSections: sections,
		})
	}
	return results
}

// sectionText extracts the text under a "## Name" heading, up to the next
// heading or end of body. Empty when the section is absent.
func sectionText(body, name string) string {
	re := regexp.MustCompile(`(?ms)^## ` + regexp.QuoteMeta(name) + `\s*$(.*?)(?:^## |\z)`)
	m := re.FindStringSubmatch(body)
	if m == nil {
		return ""
	}
	return m[1]
}
