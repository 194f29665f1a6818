package capture

import "regexp"

// otpPattern matches a bare, word-bounded run of 4 to 6 digits, the shape of
// one-time passcodes. Longer digit runs (phone numbers, ids) do not match
// because the boundary cannot fall inside the run.
var otpPattern = regexp.MustCompile(`\b\d{4,6}\b`)

// IsSensitive reports whether content looks like a one-time passcode and
// must never be persisted.
func IsSensitive(content string) bool {
	return otpPattern.MatchString(content)
}
