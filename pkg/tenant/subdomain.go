package tenant

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxSubdomainLength matches the DNS label limit.
const MaxSubdomainLength = 63

var subdomainPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// reservedSubdomains can never be owned by a tenant. "admin" doubles as the
// admin session scope key, so a tenant with that subdomain would share its cookie.
var reservedSubdomains = map[string]struct{}{
	"admin":  {},
	"www":    {},
	"api":    {},
	"tenant": {},
}

// NormalizeSubdomain trims and lowercases an identifier.
func NormalizeSubdomain(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsValidIdentifier reports whether s is syntactically a subdomain label.
// Reserved names pass this check.
func IsValidIdentifier(s string) bool {
	return s != "" && len(s) <= MaxSubdomainLength && subdomainPattern.MatchString(s)
}

// IsReservedSubdomain reports whether s is a system label.
func IsReservedSubdomain(s string) bool {
	_, ok := reservedSubdomains[NormalizeSubdomain(s)]
	return ok
}

// ValidateSubdomain checks that s may be assigned to a tenant.
func ValidateSubdomain(s string) error {
	if !IsValidIdentifier(s) {
		return fmt.Errorf("%w: %q", ErrInvalidSubdomain, s)
	}
	if IsReservedSubdomain(s) {
		return fmt.Errorf("%w: %q", ErrReservedSubdomain, s)
	}
	return nil
}

// SubdomainFromName derives a subdomain label from a display name.
// Accents are folded to their base letters and each run of other characters
// becomes one hyphen. The result may still be reserved, and it is empty
// when the name has no latin letters or digits.
func SubdomainFromName(name string) string {
	// A transform chain keeps state, so each call builds its own.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(folded) {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			pendingSep = b.Len() > 0
			continue
		}
		if pendingSep {
			if b.Len()+1 >= MaxSubdomainLength {
				break
			}
			b.WriteByte('-')
			pendingSep = false
		}
		if b.Len() >= MaxSubdomainLength {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}
