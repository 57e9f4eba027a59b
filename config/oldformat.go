package config

import "github.com/joeymnguyen/skill-bus/warnings"

// FilterOldFormat drops subscriptions using the pre-insert "inject"
// field and emits a single aggregate warning for all of them, rather
// than one warning per subscription.
func FilterOldFormat(subs []Subscription, w *warnings.Collector) []Subscription {
	var oldCount int
	kept := make([]Subscription, 0, len(subs))
	for _, sub := range subs {
		if sub.IsOldFormat() {
			oldCount++
			continue
		}
		kept = append(kept, sub)
	}
	if oldCount > 0 {
		w.Add("[skill-bus] ERROR: %d subscription(s) use old 'inject' format — skipped. "+
			"Migrate: extract inject text into an insert, replace 'inject' with 'insert' reference.", oldCount)
	}
	return kept
}
