package routing

import "strings"

// AliasResolver maps alias identifiers such as "direct-access-clinr" to the
// canonical tenant subdomain ("clinr"). Prefixes are checked in registration
// order and at most one is stripped.
type AliasResolver struct {
	prefixes []string
}

// NewAliasResolver registers prefixes in order. Empty and repeated prefixes
// are dropped; matching is case-insensitive.
func NewAliasResolver(prefixes ...string) *AliasResolver {
	r := &AliasResolver{}
	seen := make(map[string]struct{}, len(prefixes))
	for _, p := range prefixes {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		r.prefixes = append(r.prefixes, p)
	}
	return r
}

// Prefixes returns the registered prefixes in match order.
func (r *AliasResolver) Prefixes() []string {
	return append([]string(nil), r.prefixes...)
}

// Resolve returns the canonical identifier for id, or id unchanged when no
// prefix applies.
func (r *AliasResolver) Resolve(id string) string {
	canonical, _ := r.Match(id)
	return canonical
}

// Match is Resolve that also reports the stripped prefix.
//
// A prefix is not stripped when nothing would remain, or when the remainder
// itself starts with a registered prefix. The second rule keeps resolution
// idempotent: whatever Resolve returns resolves to itself.
func (r *AliasResolver) Match(id string) (canonical, prefix string) {
	for _, p := range r.prefixes {
		if !hasFoldPrefix(id, p) {
			continue
		}
		rest := id[len(p):]
		if rest == "" || r.hasPrefix(rest) {
			return id, ""
		}
		return rest, p
	}
	return id, ""
}

func (r *AliasResolver) hasPrefix(s string) bool {
	for _, p := range r.prefixes {
		if hasFoldPrefix(s, p) {
			return true
		}
	}
	return false
}

func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
