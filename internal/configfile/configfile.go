// Package configfile loads the per-project lint configuration from
// .dna/config.json. The config is explicitly constructed and handed to the
// validator at call time; there is no process-global cache.
package configfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

const ConfigFileName = "config.json"

// Config is the project lint configuration.
type Config struct {
	Terminology      *Terminology      `json:"terminology,omitempty"`
	DeletedArtifacts []DeletedArtifact `json:"deleted_artifacts,omitempty"`
}

// Terminology configures the flagged-terminology body lint: a single flagged
// term, line-level exemption patterns, and node IDs exempt entirely.
type Terminology struct {
	FlaggedTerm string   `json:"flagged_term"`
	Exemptions  []string `json:"exemptions,omitempty"`
	ExemptIDs   []string `json:"exempt_ids,omitempty"`

	// Compiled on Load; not serialized.
	TermPattern      *regexp.Regexp   `json:"-"`
	ExemptionRegexps []*regexp.Regexp `json:"-"`
}

// DeletedArtifact is one (pattern, label) pair flagging references to
// artifacts that no longer exist.
type DeletedArtifact struct {
	Pattern string `json:"pattern"`
	Label   string `json:"label,omitempty"`

	Regexp *regexp.Regexp `json:"-"`
}

// ConfigPath returns the config file location under the .dna directory.
func ConfigPath(dnaDir string) string {
	return filepath.Join(dnaDir, ConfigFileName)
}

// Load reads and compiles the lint config. A missing file is not an error;
// it returns (nil, nil) and every config-driven lint simply stays off.
func Load(dnaDir string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(dnaDir)) // #nosec G304 - controlled path under .dna
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.compile(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config as indented JSON.
func (c *Config) Save(dnaDir string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(dnaDir, 0750); err != nil {
		return fmt.Errorf("creating %s: %w", dnaDir, err)
	}
	if err := os.WriteFile(ConfigPath(dnaDir), data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func (c *Config) compile() error {
	if t := c.Terminology; t != nil && t.FlaggedTerm != "" {
		t.TermPattern = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(t.FlaggedTerm) + `\b`)
		for _, e := range t.Exemptions {
			re, err := regexp.Compile(e)
			if err != nil {
				return fmt.Errorf("terminology exemption %q: %w", e, err)
			}
			t.ExemptionRegexps = append(t.ExemptionRegexps, re)
		}
	}
	for i := range c.DeletedArtifacts {
		da := &c.DeletedArtifacts[i]
		if da.Pattern == "" {
			continue
		}
		re, err := regexp.Compile(da.Pattern)
		if err != nil {
			return fmt.Errorf("deleted artifact pattern %q: %w", da.Pattern, err)
		}
		da.Regexp = re
		if da.Label == "" {
			da.Label = da.Pattern
		}
	}
	return nil
}

// TermExempt reports whether a node ID is exempt from the terminology lint.
func (t *Terminology) TermExempt(id string) bool {
	for _, e := range t.ExemptIDs {
		if e == id {
			return true
		}
	}
	return false
}

// LineExempt reports whether a body line matches any exemption pattern.
func (t *Terminology) LineExempt(line string) bool {
	for _, re := range t.ExemptionRegexps {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
