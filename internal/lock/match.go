package lock

import "crypto/subtle"

// MatchFunc decides whether a submitted code equals the credential.
// Implementations must not reveal how many characters matched.
type MatchFunc func(code, credential string) bool

// MatchExact compares code and credential with plain string equality.
func MatchExact(code, credential string) bool {
	return code == credential
}

// MatchConstantTime compares code and credential in time independent of
// where they differ.
func MatchConstantTime(code, credential string) bool {
	return subtle.ConstantTimeCompare([]byte(code), []byte(credential)) == 1
}
