package deck

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"deckcheck/internal/normalize"
)

// Search finds commanders by name: exact canonical-name hits first, then
// substring hits (shortest name wins), then fuzzy candidates ranked by edit
// distance. At most limit decks are returned; limit <= 0 means no cap.
func (d *Dataset) Search(query string, limit int) ([]Deck, error) {
	if err := d.Load(); err != nil {
		return nil, err
	}

	pat := normalize.Name(query)
	if pat == "" {
		return nil, nil
	}

	var out []Deck
	taken := make(map[int]struct{})
	add := func(name string) {
		for _, i := range d.byName[name] {
			if _, dup := taken[i]; dup {
				continue
			}
			out = append(out, d.decks[i])
			taken[i] = struct{}{}
		}
	}

	add(pat)

	var subs []string
	for _, n := range d.allNames {
		if n != pat && strings.Contains(n, pat) {
			subs = append(subs, n)
		}
	}
	sort.Slice(subs, func(i, j int) bool {
		if len(subs[i]) != len(subs[j]) {
			return len(subs[i]) < len(subs[j])
		}
		return subs[i] < subs[j]
	})
	for _, n := range subs {
		add(n)
	}

	thr := distanceThreshold(len(pat))
	candidates := filterCandidates(d.allNames, pat, thr)
	ranks := fuzzy.RankFind(pat, candidates)
	sort.Sort(ranks)

	for _, r := range ranks {
		if r.Distance > thr {
			continue
		}
		add(r.Target)
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// distanceThreshold calculates acceptable edit distance (~20% of length)
func distanceThreshold(n int) int {
	th := n / 5
	if th < 1 {
		return 1
	}
	if th > 3 {
		return 3
	}
	return th
}

// filterCandidates pre-filters candidates by length window and first rune.
func filterCandidates(names []string, pattern string, threshold int) []string {
	if len(names) == 0 {
		return nil
	}

	firstRune := func(s string) rune {
		for _, r := range s {
			return r
		}
		return 0
	}

	fr := firstRune(pattern)
	patLen := len(pattern)

	candidates := make([]string, 0, len(names)/4)
	for _, n := range names {
		if abs(len(n)-patLen) > threshold {
			continue
		}
		if firstRune(n) != fr {
			continue
		}
		candidates = append(candidates, n)
	}
	return candidates
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
