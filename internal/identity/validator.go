package identity

import "regexp"

// mailPattern accepts local-part@domain.tld with a 2-7 letter TLD.
var mailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,7}$`)

// ValidMail reports whether mail passes the standard address-format check.
func ValidMail(mail string) bool {
	return mailPattern.MatchString(mail)
}
