package checker

import "strings"

// ResolveURL normalizes a possibly relative or truncated href against the
// root URL of the page it was found on. Purely string manipulation, no
// network access.
//
// An already absolute candidate is returned unchanged. Otherwise the
// candidate is appended to the root, collapsing a single overlapping path
// segment: root ".../fr" with candidate "/fr/test" resolves to ".../fr/test",
// not ".../fr/fr/test". Deeper overlaps are not collapsed.
func ResolveURL(candidate, root string) string {
	if strings.HasPrefix(candidate, "http") {
		return candidate
	}
	cand := strings.Trim(candidate, " /")
	root = strings.Trim(root, " /")
	if cand == "" {
		return root
	}

	head := cand
	if i := strings.Index(cand, "/"); i >= 0 {
		head = cand[:i]
	}
	segments := strings.Split(root, "/")
	tail := segments[len(segments)-1]
	if head != "" && head == tail {
		cand = strings.TrimPrefix(strings.TrimPrefix(cand, head), "/")
		if cand == "" {
			return root
		}
	}
	return root + "/" + cand
}
