package condition

import "github.com/joeymnguyen/skill-bus/config"

// ResolveEffective stacks insert-level and subscription-level
// conditions: insert conditions are inherited unless the subscription
// opts out with inheritConditions:false, then the subscription's own
// conditions are appended. A missing insert contributes no conditions —
// the dangling reference is reported later by the output assembler.
func ResolveEffective(sub config.Subscription, inserts map[string]config.Insert) []config.Condition {
	var effective []config.Condition

	if sub.InheritsConditions() {
		if ins, ok := inserts[sub.Insert]; ok {
			effective = append(effective, ins.Conditions...)
		}
	}
	effective = append(effective, sub.Conditions...)
	return effective
}
