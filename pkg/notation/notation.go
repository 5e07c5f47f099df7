// Package notation parses textual rule notations for life-like cellular
// automata and turns them into rule tables. Two formats are supported:
//
//   - RLE: "B3/S23" — birth digits, then survival digits.
//   - MCell: "23/3" — survival digits, then birth digits.
//
// Digits in each half must be distinct and ascending, as in the reference
// notations (https://en.wikipedia.org/wiki/Life-like_cellular_automaton).
package notation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"ndca/pkg/grid"
	"ndca/pkg/neighborhood"
	"ndca/pkg/rule"
)

// ErrInvalidFormat reports a notation string no supported format accepts.
var ErrInvalidFormat = errors.New("notation: invalid rule format")

var (
	rleFormat   = regexp.MustCompile(`^B\d*/S\d*$`)
	mcellFormat = regexp.MustCompile(`^\d*/\d*$`)
)

// Rule is a parsed birth/survival table: a dead cell with a neighbor count
// in Birth turns on, a live cell with a count in Survival stays on, every
// other cell turns off.
type Rule struct {
	Notation string
	Birth    []int
	Survival []int
}

// Parse reads a rule in RLE or MCell notation.
func Parse(s string) (Rule, error) {
	switch {
	case rleFormat.MatchString(s):
		parts := strings.SplitN(s, "/", 2)
		birth, err := digits(parts[0][1:])
		if err != nil {
			return Rule{}, fmt.Errorf("%w: %q", err, s)
		}
		survival, err := digits(parts[1][1:])
		if err != nil {
			return Rule{}, fmt.Errorf("%w: %q", err, s)
		}
		return Rule{Notation: s, Birth: birth, Survival: survival}, nil

	case mcellFormat.MatchString(s):
		parts := strings.SplitN(s, "/", 2)
		survival, err := digits(parts[0])
		if err != nil {
			return Rule{}, fmt.Errorf("%w: %q", err, s)
		}
		birth, err := digits(parts[1])
		if err != nil {
			return Rule{}, fmt.Errorf("%w: %q", err, s)
		}
		return Rule{Notation: s, Birth: birth, Survival: survival}, nil
	}
	return Rule{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

// digits converts an ascending run of distinct digits into ints.
func digits(s string) ([]int, error) {
	out := make([]int, 0, len(s))
	prev := -1
	for _, r := range s {
		d := int(r - '0')
		if d <= prev {
			return nil, fmt.Errorf("%w: digits must be distinct and ascending", ErrInvalidFormat)
		}
		prev = d
		out = append(out, d)
	}
	return out, nil
}

// Configuration builds the rule's next-state function over the Moore
// neighborhood of the given rank. This pair is the whole contract between
// the parser and a ruleset.
func (r Rule) Configuration(rank int) *rule.Configuration {
	offsets := neighborhood.Moore(rank)
	cells := make([]rule.Cell, len(offsets))
	for i, o := range offsets {
		cells[i] = rule.Cell{Offset: o}
	}

	birth := memberSet(r.Birth)
	survival := memberSet(r.Survival)
	next := func(g *grid.Grid, n *neighborhood.Neighborhood) bool {
		total := n.Total()
		if g.Bit(n.Focus()) {
			return total < len(survival) && survival[total]
		}
		return total < len(birth) && birth[total]
	}
	return rule.NewConfigurationFunc(next, cells...)
}

// Ruleset wraps the rule's single configuration in an always-pass ruleset
// bound to the given rank.
func (r Rule) Ruleset(rank int) (*rule.Ruleset, error) {
	rs, err := rule.New(rule.AlwaysPass())
	if err != nil {
		return nil, err
	}
	if err := rs.Add(r.Configuration(rank)); err != nil {
		return nil, err
	}
	return rs, nil
}

// Counts up to 3^rank-1 neighbors appear in practice; a small lookup slice
// beats a map on the tick path.
func memberSet(counts []int) []bool {
	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	set := make([]bool, max+1)
	for _, c := range counts {
		set[c] = true
	}
	return set
}
