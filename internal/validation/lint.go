package validation

import (
	"regexp"
	"sort"
	"strings"

	"github.com/steveyegge/dna/internal/configfile"
	"github.com/steveyegge/dna/internal/graph"
	"github.com/steveyegge/dna/internal/types"
)

var (
	reStaleINF   = regexp.MustCompile(`\bINF-\d{3}\b`)
	reStaleCTX   = regexp.MustCompile(`\bCTX-\d{3}\b`)
	reDecRef     = regexp.MustCompile(`\bDEC-(\d{3})\b`)
	reSupersedes = regexp.MustCompile(`[Ss]upersedes?\s+(DEC-\d{3})`)
)

// lintBodies runs the body-content lint layer. Everything here is a
// warning: the body is prose, and prose findings never block mutations.
func lintBodies(g *graph.Graph, cfg *configfile.Config, res *Result) {
	for _, nid := range g.SortedIDs() {
		n := g.Nodes[nid]
		body := n.Body
		if body == "" {
			continue
		}

		// References to retired INF-/CTX- record families.
		if infs := uniqueSorted(reStaleINF.FindAllString(body, -1)); len(infs) > 0 {
			res.warnf("%s [stale-ref]: body references %d stale INF ID(s) (%s)", nid, len(infs), strings.Join(infs, ", "))
		}
		if ctxs := uniqueSorted(reStaleCTX.FindAllString(body, -1)); len(ctxs) > 0 {
			res.warnf("%s [stale-ref]: body references %d stale CTX ID(s) (%s)", nid, len(ctxs), strings.Join(ctxs, ", "))
		}

		// Prose references to decisions that do not exist.
		var badRefs []string
		for _, num := range uniqueSorted(matchGroups(reDecRef, body)) {
			refID := types.IDPrefix + num
			if refID != nid && g.Get(refID) == nil {
				badRefs = append(badRefs, refID)
			}
		}
		if len(badRefs) > 0 {
			res.warnf("%s [broken-ref]: body references non-existent %s", nid, strings.Join(badRefs, ", "))
		}

		// Supersession claims must agree with the target's actual state.
		for _, m := range reSupersedes.FindAllStringSubmatch(body, -1) {
			targetID := m[1]
			target := g.Get(targetID)
			if target != nil && target.State != types.StateSuperseded {
				state := string(target.State)
				if state == "" {
					state = "unknown"
				}
				res.warnf("%s [supersession]: claims to supersede %s, but %s state is '%s'", nid, targetID, targetID, state)
			}
		}

		if cfg == nil {
			continue
		}

		// Flagged terminology, with per-line exemption patterns and
		// per-node exempt IDs.
		if t := cfg.Terminology; t != nil && t.TermPattern != nil && !t.TermExempt(nid) {
			count := 0
			for _, line := range strings.Split(body, "\n") {
				if t.TermPattern.MatchString(line) && !t.LineExempt(line) {
					count++
				}
			}
			if count > 0 {
				res.warnf("%s [terminology]: %d line(s) with unexempted '%s' in body text", nid, count, t.FlaggedTerm)
			}
		}

		// References to artifacts that have been deleted from the repo.
		var matched []string
		for _, da := range cfg.DeletedArtifacts {
			if da.Regexp != nil && da.Regexp.MatchString(body) {
				matched = append(matched, da.Label)
			}
		}
		if len(matched) > 0 {
			res.warnf("%s [deleted-artifact]: body references deleted artifacts: %s", nid, strings.Join(matched, ", "))
		}
	}
}

func matchGroups(re *regexp.Regexp, text string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		out = append(out, m[1])
	}
	return out
}

func uniqueSorted(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
