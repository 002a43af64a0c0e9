package types

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestStateTransitions(t *testing.T) {
	states := []State{StateSuggested, StateCommitted, StateSuperseded}
	legal := map[[2]State]bool{
		{StateSuggested, StateCommitted}:  true,
		{StateSuggested, StateSuperseded}: true,
		{StateCommitted, StateSuperseded}: true,
	}

	for _, old := range states {
		for _, next := range states {
			want := old == next || legal[[2]State{old, next}]
			if got := old.CanTransition(next); got != want {
				t.Errorf("CanTransition(%s -> %s) = %v, want %v", old, next, got, want)
			}
		}
	}
}

func TestStateIsValid(t *testing.T) {
	for _, s := range []State{StateSuggested, StateCommitted, StateSuperseded} {
		if !s.IsValid() {
			t.Errorf("State(%q).IsValid() = false, want true", s)
		}
	}
	for _, s := range []State{"", "open", "SUGGESTED", "done"} {
		if s.IsValid() {
			t.Errorf("State(%q).IsValid() = true, want false", s)
		}
	}
}

func TestStakesIsValid(t *testing.T) {
	for _, s := range []Stakes{"", StakesHigh, StakesMedium, StakesLow} {
		if !s.IsValid() {
			t.Errorf("Stakes(%q).IsValid() = false, want true", s)
		}
	}
	if Stakes("critical").IsValid() {
		t.Error("Stakes(critical).IsValid() = true, want false")
	}
}

func TestValidID(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"DEC-001", true},
		{"DEC-999", true},
		{"DEC-1", false},
		{"DEC-0001", false},
		{"dec-001", false},
		{"INF-001", false},
		{"DEC-001 ", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidID(tt.id); got != tt.valid {
			t.Errorf("ValidID(%q) = %v, want %v", tt.id, got, tt.valid)
		}
	}
}

func TestLevelName(t *testing.T) {
	tests := []struct {
		level int
		name  string
	}{
		{1, "Identity"},
		{2, "Direction"},
		{3, "Strategy"},
		{4, "Tactics"},
		{0, "?"},
		{5, "?"},
	}
	for _, tt := range tests {
		if got := LevelName(tt.level); got != tt.name {
			t.Errorf("LevelName(%d) = %q, want %q", tt.level, got, tt.name)
		}
	}
}

func TestDepRefUnmarshalYAML(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    []string
		wantErr bool
	}{
		{
			name: "bare IDs",
			yaml: "depends_on:\n  - DEC-001\n  - DEC-002\n",
			want: []string{"DEC-001", "DEC-002"},
		},
		{
			name: "structured refs",
			yaml: "depends_on:\n  - id: DEC-003\n    note: legacy shape\n",
			want: []string{"DEC-003"},
		},
		{
			name: "mixed shapes",
			yaml: "depends_on:\n  - DEC-001\n  - id: DEC-004\n",
			want: []string{"DEC-001", "DEC-004"},
		},
		{
			name: "empty list",
			yaml: "depends_on: []\n",
			want: nil,
		},
		{
			name:    "mapping without id",
			yaml:    "depends_on:\n  - note: no id here\n",
			wantErr: true,
		},
		{
			name:    "nested sequence",
			yaml:    "depends_on:\n  - [DEC-001]\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Decision
			err := yaml.Unmarshal([]byte(tt.yaml), &d)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			got := d.Deps()
			if len(got) != len(tt.want) {
				t.Fatalf("Deps() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Deps()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDependsDirectlyOn(t *testing.T) {
	d := Decision{DependsOn: DepRefs([]string{"DEC-001", "DEC-002"})}
	if !d.DependsDirectlyOn("DEC-001") {
		t.Error("DependsDirectlyOn(DEC-001) = false, want true")
	}
	if d.DependsDirectlyOn("DEC-003") {
		t.Error("DependsDirectlyOn(DEC-003) = true, want false")
	}
}

func TestSortedIDs(t *testing.T) {
	nodes := map[string]*Decision{
		"DEC-010": {ID: "DEC-010"},
		"DEC-002": {ID: "DEC-002"},
		"DEC-001": {ID: "DEC-001"},
	}
	ids := SortedIDs(nodes)
	want := []string{"DEC-001", "DEC-002", "DEC-010"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("SortedIDs() = %v, want %v", ids, want)
		}
	}
}
