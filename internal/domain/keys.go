package domain

import (
	"regexp"
	"strings"
)

// keyRe constrains primitive names: lowercase alphanumeric start, then
// letters/digits plus '.', '-', '_', '/'. A name identifies a version
// family, not a single version.
var keyRe = regexp.MustCompile(`^[a-z0-9][a-z0-9\-\/\._]{2,200}$`)

// NormalizeKey trims, lowercases and validates a primitive name.
func NormalizeKey(key string) (string, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	if !keyRe.MatchString(k) {
		return "", NewError(CodeValidation, "domain.NormalizeKey", "INVALID_KEY", nil)
	}
	return k, nil
}

// NextVersion allocates the next version for a family: 1 when nothing
// exists yet, otherwise one past the current maximum. Allocation is
// check-then-act by design; the repository's unique constraint decides
// races.
func NextVersion(current *int) int {
	if current == nil {
		return 1
	}
	return *current + 1
}
