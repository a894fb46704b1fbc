package state

import "github.com/atomicstack/tagsort/internal/settings"

// CloneRules produces a shallow copy of the provided rules.
func CloneRules(items []settings.Rule) []settings.Rule {
	dup := make([]settings.Rule, len(items))
	copy(dup, items)
	return dup
}
