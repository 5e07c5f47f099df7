package rules

import (
	"fmt"

	"ndca/pkg/rule"
)

// Elementary builds a Wolfram elementary automaton as an exact-match
// ruleset on a one-dimensional grid: one configuration per (left, center,
// right) pattern, the code bit at index (l<<2)|(c<<1)|r deciding the next
// state. The eight patterns are disjoint, so exactly one configuration
// matches every cell.
func Elementary(code uint8) Factory {
	return func(shape []int) (*rule.Ruleset, error) {
		if len(shape) != 1 {
			return nil, fmt.Errorf("%w: elementary rules need a 1-D grid", rule.ErrDimensionMismatch)
		}
		rs, err := rule.New(rule.Match())
		if err != nil {
			return nil, err
		}
		for pattern := 0; pattern < 8; pattern++ {
			next := code>>pattern&1 == 1
			cfg := rule.NewConfiguration(next,
				rule.Expect(pattern&4 != 0, -1),
				rule.Expect(pattern&2 != 0, 0),
				rule.Expect(pattern&1 != 0, 1),
			)
			if err := rs.Add(cfg); err != nil {
				return nil, err
			}
		}
		return rs, nil
	}
}

func init() {
	// Rule 110 is the canonical default, as good a showcase as any.
	Register("elementary", Elementary(110))
}
