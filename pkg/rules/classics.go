package rules

import (
	"ndca/pkg/notation"
	"ndca/pkg/rule"
)

// The classic life-like rules, registered by name. Each is pure notation;
// the parser supplies the Moore neighborhood for the grid's rank.
var classics = map[string]string{
	"life":               "B3/S23",
	"highlife":           "B36/S23",
	"seeds":              "B2/S",
	"morley":             "B368/S245",
	"replicator":         "B1357/S1357",
	"life-without-death": "B3/S012345678",
}

func init() {
	for name, bs := range classics {
		r, err := notation.Parse(bs)
		if err != nil {
			panic("rules: bad built-in notation " + bs)
		}
		Register(name, func(shape []int) (*rule.Ruleset, error) {
			return r.Ruleset(len(shape))
		})
	}
}
