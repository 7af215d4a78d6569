// Package allergy expands user-supplied allergy tokens into the full set of
// surface forms used for ingredient matching.
package allergy

import (
	"sort"
	"strings"
)

// synonyms maps each canonical allergen category to every surface form it is
// known under, in Korean and English. Matching any one form pulls in the whole
// list, so "salmon" flags an item even when the user only wrote "fish".
var synonyms = map[string][]string{
	"chicken": {"닭", "치킨", "계육", "chicken"},
	"beef":    {"소", "소고기", "비프", "beef"},
	"fish":    {"어류", "생선", "연어", "참치", "고등어", "fish", "salmon", "tuna", "mackerel"},
	"duck":    {"오리", "duck"},
	"lamb":    {"양", "램", "양고기", "lamb"},
	"turkey":  {"칠면조", "터키", "turkey"},
	"egg":     {"계란", "달걀", "egg"},
	"dairy":   {"우유", "유청", "치즈", "유당", "milk", "whey", "lactose", "cheese"},
	"grain":   {"밀", "보리", "옥수수", "글루텐", "밀글루텐", "wheat", "barley", "corn", "gluten"},
}

// Categories returns the canonical allergen categories, sorted, for callers
// building selection UIs.
func Categories() []string {
	out := make([]string, 0, len(synonyms))
	for k := range synonyms {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ExpandTerms normalizes raw tokens (trim, lowercase, drop empties) and unions
// in the full synonym list of every category a token belongs to. Tokens that
// match nothing are kept as-is. Expansion is idempotent.
func ExpandTerms(tokens []string) map[string]struct{} {
	expanded := make(map[string]struct{})
	for _, raw := range tokens {
		t := strings.ToLower(strings.TrimSpace(raw))
		if t == "" {
			continue
		}
		expanded[t] = struct{}{}
		for category, syns := range synonyms {
			if !matchesCategory(t, category, syns) {
				continue
			}
			for _, s := range syns {
				expanded[strings.ToLower(s)] = struct{}{}
			}
		}
	}
	return expanded
}

func matchesCategory(token, category string, syns []string) bool {
	if token == category {
		return true
	}
	for _, s := range syns {
		if token == strings.ToLower(s) {
			return true
		}
	}
	return false
}

// MatchesAny reports whether any expanded term occurs as a substring of blob.
// Callers lowercase the blob themselves.
func MatchesAny(terms map[string]struct{}, blob string) bool {
	for t := range terms {
		if strings.Contains(blob, t) {
			return true
		}
	}
	return false
}
