package auth

import "crypto/subtle"

// Credentials holds the configured admin username/password pair.
type Credentials struct {
	Username string
	Password string
}

// Match reports whether the supplied pair equals the configured one, using
// constant-time comparison.
func (c Credentials) Match(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(c.Username), []byte(username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(c.Password), []byte(password)) == 1
	return userOK && passOK
}
