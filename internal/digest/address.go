package digest

import (
	"fmt"
	"strings"
)

// Scheme is the URI scheme under which digest facets are exposed.
const Scheme = "gitingest"

// EncodeAddress renders a source identifier as a token that survives
// transport inside a hierarchical URI: scheme separators, path separators
// and dots all become underscores. The mapping is deterministic but not
// injective; DecodeAddress recovers the original by re-deriving tokens from
// the live key set instead of storing the mapping.
func EncodeAddress(source string) string {
	r := strings.NewReplacer("://", "_", "/", "_", ".", "_")
	return r.Replace(source)
}

// FacetURI builds the full resource URI for one facet of a source.
func FacetURI(source string, f Facet) string {
	return fmt.Sprintf("%s://%s/%s", Scheme, EncodeAddress(source), f)
}

// DecodeAddress resolves an address token back to a stored identifier by
// scanning the known keys: a key matches if its encoding equals the token,
// or if the key itself equals the token (identifiers that need no escaping).
// The first match in order wins.
func DecodeAddress(token string, known []string) (string, error) {
	for _, key := range known {
		if key == token || EncodeAddress(key) == token {
			return key, nil
		}
	}
	return "", fmt.Errorf("%w: %s (known: %s)", ErrAddressNotFound, token, joinOrNone(known))
}

func joinOrNone(keys []string) string {
	if len(keys) == 0 {
		return "none"
	}
	return strings.Join(keys, ", ")
}
