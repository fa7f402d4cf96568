package utils

import (
	"net/url"
	"strings"
)

// attributePrefix is the key prefix variant attributes historically carried
const attributePrefix = "attribute_"

// DecodeSlug percent-decodes a product slug.
// Example: "blue%20shirt" = "blue shirt"
// A slug with a malformed escape is returned as given.
func DecodeSlug(slug string) string {
	decoded, err := url.PathUnescape(slug)
	if err != nil {
		return slug
	}
	return decoded
}

// ReplaceSpaces rewrites every literal space in value
func ReplaceSpaces(value string, replacement string) string {
	return strings.ReplaceAll(value, " ", replacement)
}

// StripAttributePrefix removes every "attribute_" occurrence from s
func StripAttributePrefix(s string) string {
	return strings.ReplaceAll(s, attributePrefix, "")
}

// JoinSKUParts composes a variant SKU from the parent SKU and a fragment.
// Example: "shirt" + "-" + "Deep_Blue-M" = "shirt-Deep_Blue-M"
// An empty base still yields the leading separator.
func JoinSKUParts(base string, separator string, fragment string) string {
	return base + separator + fragment
}
