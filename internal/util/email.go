package util

import "regexp"

// local@domain.tld with no whitespace or extra '@'. Nothing stricter is checked.
// Whitespace is the broad set: Unicode separators, vertical tab and BOM, not
// just RE2's ASCII \s.
var emailRe = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

func IsEmail(s string) bool {
	return emailRe.MatchString(s)
}
