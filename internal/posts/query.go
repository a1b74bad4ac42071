package posts

import "strings"

// IsSupportedCompare reports whether compare is a known meta operator. An
// empty operator defaults to equality.
func IsSupportedCompare(compare string) bool {
	switch normalizeCompare(compare) {
	case CompareEqual, CompareNotEqual, CompareExists, CompareNotExists:
		return true
	default:
		return false
	}
}

func (c MetaClause) normalizedCompare() string {
	return normalizeCompare(c.Compare)
}

func normalizeCompare(compare string) string {
	trimmed := strings.Join(strings.Fields(strings.ToUpper(compare)), " ")
	if trimmed == "" {
		return CompareEqual
	}
	return trimmed
}
