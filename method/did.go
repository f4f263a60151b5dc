package method

import "strings"

const (
	Prefix = "did:"

	MethodWeb = "web"
)

// String returns the method part of the DID, e.g. 'web' from 'did:web:...'.
// Empty string is returned when the input isn't a DID.
func String(did string) string {
	if !strings.HasPrefix(did, Prefix) {
		return ""
	}
	method, _, found := strings.Cut(did[len(Prefix):], ":")
	if !found {
		return ""
	}
	return method
}

// IsDID tells if s looks like a DID URI: 'did:' + method + ':' + id.
func IsDID(s string) bool {
	if String(s) == "" {
		return false
	}
	id := s[len(Prefix)+len(String(s))+1:]
	return id != ""
}
