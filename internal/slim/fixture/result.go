package fixture

import (
	"strings"

	"github.com/killertux/goslim/internal/slim/codec"
)

// List marker conventions for fixture return values. A method that returns a
// collection encodes it as "/__ARRAY[a__|__b]__/"; nested collections nest
// markers inside elements.
const (
	listPrefix    = "/__ARRAY["
	listSuffix    = "]__/"
	listSeparator = "__|__"
)

// ListString encodes element strings as a list marker.
func ListString(values ...string) string {
	return listPrefix + strings.Join(values, listSeparator) + listSuffix
}

// ParseList decodes a list marker into result values, recursing into nested
// markers. The second return is false when s is not a list marker.
func ParseList(s string) ([]codec.Node, bool) {
	if !strings.HasPrefix(s, listPrefix) || !strings.HasSuffix(s, listSuffix) {
		return nil, false
	}
	inner := s[len(listPrefix) : len(s)-len(listSuffix)]
	if inner == "" {
		return []codec.Node{}, true
	}
	items := make([]codec.Node, 0, 4)
	for _, elem := range splitTopLevel(inner) {
		if nested, ok := ParseList(elem); ok {
			items = append(items, codec.List(nested...))
		} else {
			items = append(items, codec.Scalar(elem))
		}
	}
	return items, true
}

// splitTopLevel splits on the element separator, ignoring separators inside
// nested markers.
func splitTopLevel(s string) []string {
	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(s); {
		switch {
		case strings.HasPrefix(s[i:], listPrefix):
			depth++
			i += len(listPrefix)
		case depth > 0 && strings.HasPrefix(s[i:], listSuffix):
			depth--
			i += len(listSuffix)
		case depth == 0 && strings.HasPrefix(s[i:], listSeparator):
			out = append(out, s[start:i])
			i += len(listSeparator)
			start = i
		default:
			i++
		}
	}
	return append(out, s[start:])
}
