// Package frontmatter parses and serializes decision records: a YAML
// frontmatter block between --- fences followed by a markdown body.
package frontmatter

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/steveyegge/dna/internal/types"
)

// Parse splits raw file content into decoded frontmatter fields and body
// text. Content without a frontmatter block returns (nil, content, nil);
// the loader decides whether that is a problem.
func Parse(raw []byte) (*types.Decision, string, error) {
	text := string(raw)

	if !strings.HasPrefix(text, "---") {
		return nil, text, nil
	}
	end := strings.Index(text[3:], "\n---")
	if end == -1 {
		return nil, text, nil
	}
	end += 3
	if end < 4 {
		// Empty frontmatter block; not a decision record.
		return nil, text, nil
	}

	block := text[4:end]
	body := text[end+4:]

	var d types.Decision
	if err := yaml.Unmarshal([]byte(block), &d); err != nil {
		return nil, text, fmt.Errorf("parsing frontmatter: %w", err)
	}
	d.Body = body
	return &d, body, nil
}

// ParseFile reads and parses a decision record from disk.
func ParseFile(path string) (*types.Decision, string, error) {
	raw, err := os.ReadFile(path) // #nosec G304 - path comes from partition globbing
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}
	d, body, err := Parse(raw)
	if err != nil {
		return nil, body, fmt.Errorf("%s: %w", path, err)
	}
	if d != nil {
		d.FilePath = path
	}
	return d, body, nil
}

// titleNeedsQuoting matches titles that would break bare YAML scalars.
var titleNeedsQuoting = regexp.MustCompile("[:#\\[\"']|^[{>|*&!%@`]")

// Serialize renders a decision record with a fixed frontmatter field order:
// id, title, date, level, state, stakes (when set), depends_on. This is
// template output, not general YAML, so records stay diff-stable.
func Serialize(d *types.Decision, body string) []byte {
	var b strings.Builder
	b.WriteString("---\n")

	fmt.Fprintf(&b, "id: %s\n", d.ID)

	if titleNeedsQuoting.MatchString(d.Title) {
		fmt.Fprintf(&b, "title: %q\n", d.Title)
	} else {
		fmt.Fprintf(&b, "title: %s\n", d.Title)
	}

	fmt.Fprintf(&b, "date: %s\n", d.Date)
	fmt.Fprintf(&b, "level: %d\n", d.Level)
	fmt.Fprintf(&b, "state: %s\n", d.State)

	if d.Stakes != "" {
		fmt.Fprintf(&b, "stakes: %s\n", d.Stakes)
	}

	deps := d.Deps()
	if len(deps) == 0 {
		b.WriteString("depends_on: []\n")
	} else {
		b.WriteString("depends_on:\n")
		for _, dep := range deps {
			fmt.Fprintf(&b, "  - %s\n", dep)
		}
	}

	b.WriteString("---\n")

	// Body preserved verbatim with a single separating newline.
	if body != "" && !strings.HasPrefix(body, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(body)

	return []byte(b.String())
}

// WriteFile atomically replaces path with data using write-temp-then-rename.
// This is the only durability guarantee the graph engine relies on.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
