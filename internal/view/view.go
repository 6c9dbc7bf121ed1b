// Package view derives the filtered and sorted list shown to the user.
package view

import (
	"slices"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/cinelist/internal/domain"
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Deriver computes views with a fixed collation language.
// A Deriver is not safe for concurrent use.
type Deriver struct {
	tag      language.Tag
	collator *collate.Collator
}

// NewDeriver creates a Deriver that orders titles by the rules of tag
func NewDeriver(tag language.Tag) *Deriver {
	return &Deriver{
		tag:      tag,
		collator: collate.New(tag),
	}
}

// Language returns the collation language
func (d *Deriver) Language() language.Tag {
	return d.tag
}

// Derive filters c by a case-insensitive title substring, then sorts the
// matches. Ties keep their collection order. The result is always a new
// slice; c is never modified.
func (d *Deriver) Derive(c domain.Collection, searchTerm string, mode domain.SortMode) []domain.Movie {
	out := d.filter(c, searchTerm)

	switch mode {
	case domain.SortYear:
		sort.SliceStable(out, func(i, j int) bool {
			return yearValue(out[i].Year) < yearValue(out[j].Year)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return d.collator.CompareString(out[i].Title, out[j].Title) < 0
		})
	}
	return out
}

func (d *Deriver) filter(c domain.Collection, searchTerm string) []domain.Movie {
	out := make([]domain.Movie, 0, len(c))
	if searchTerm == "" {
		return append(out, c...)
	}

	lower := cases.Lower(d.tag)
	term := lower.String(searchTerm)
	for _, m := range c {
		if strings.Contains(lower.String(m.Title), term) {
			out = append(out, m)
		}
	}
	return out
}

// yearValue parses a validated year; anything unparsable sorts first
func yearValue(year string) int {
	n, err := strconv.Atoi(year)
	if err != nil {
		return 0
	}
	return n
}

// Derive is a convenience for a one-off view with locale-neutral collation
func Derive(c domain.Collection, searchTerm string, mode domain.SortMode) []domain.Movie {
	return NewDeriver(language.Und).Derive(c, searchTerm, mode)
}

// Suggest returns up to limit movies whose titles fuzzily resemble term,
// best first. It is meant for "did you mean" hints when Derive finds nothing.
func Suggest(c domain.Collection, term string, limit int) []domain.Movie {
	if term == "" || len(c) == 0 || limit <= 0 {
		return nil
	}

	titles := make([]string, len(c))
	for i, m := range c {
		titles[i] = m.Title
	}

	ranks := lfuzzy.RankFindNormalizedFold(term, titles)
	if len(ranks) == 0 {
		// fall back to matching title words against the term
		for _, word := range strings.Fields(term) {
			ranks = append(ranks, lfuzzy.RankFindNormalizedFold(word, titles)...)
		}
	}
	sort.Stable(ranks)

	out := make([]domain.Movie, 0, limit)
	seen := make(map[int]bool)
	for _, r := range ranks {
		if seen[r.OriginalIndex] {
			continue
		}
		seen[r.OriginalIndex] = true
		out = append(out, c[r.OriginalIndex])
		if len(out) == limit {
			break
		}
	}
	return out
}

// MatchedIndexes returns the rune positions in title that match term, for
// highlighting. A case-insensitive substring hit (the same test Derive
// filters with) is returned as a contiguous range; otherwise the positions
// of a fuzzy match are returned. It returns nil when term is empty or
// nothing matches.
func MatchedIndexes(title, term string) []int {
	if term == "" {
		return nil
	}
	if idx := substringIndexes(language.Und, title, term); idx != nil {
		return idx
	}
	return fuzzyIndexes(title, term)
}

// substringIndexes lowers title rune by rune, remembering which title rune
// produced each lowered byte, so a hit in the lowered text maps back to
// rune positions in the original.
func substringIndexes(tag language.Tag, title, term string) []int {
	lower := cases.Lower(tag)
	needle := lower.String(term)
	if needle == "" {
		return nil
	}

	var folded strings.Builder
	owner := make([]int, 0, len(title))
	i := 0
	for _, r := range title {
		l := lower.String(string(r))
		folded.WriteString(l)
		for range len(l) {
			owner = append(owner, i)
		}
		i++
	}

	at := strings.Index(folded.String(), needle)
	if at < 0 {
		return nil
	}
	first, last := owner[at], owner[at+len(needle)-1]
	out := make([]int, 0, last-first+1)
	for r := first; r <= last; r++ {
		out = append(out, r)
	}
	return out
}

// fuzzyIndexes returns the rune positions of a subsequence match
func fuzzyIndexes(title, term string) []int {
	matches := fuzzy.Find(term, []string{title})
	if len(matches) == 0 {
		return nil
	}

	// fuzzy reports byte offsets
	byteIdx := matches[0].MatchedIndexes
	out := make([]int, 0, len(byteIdx))
	for _, b := range byteIdx {
		if b < 0 || b > len(title) {
			continue
		}
		out = append(out, utf8.RuneCountInString(title[:b]))
	}
	slices.Sort(out)
	return slices.Compact(out)
}
