package schema

import "strings"

// TypeID is the decomposition of a reverse-DNS type identifier. Catalogs
// wrap third-party types by appending the vendor's full bundle id to their
// own namespace, e.g. <catalog.ns>.<vendor.bundle.App>.<category>.<TypeName>,
// so a wrapped identifier contains two bundle ids back to back.
type TypeID struct {
	Full       string `json:"full_id"`
	Namespace  string `json:"namespace,omitempty"`
	Bundle     string `json:"bundle_id,omitempty"`
	Category   string `json:"category,omitempty"`
	Name       string `json:"type_name,omitempty"`
	ThirdParty bool   `json:"is_third_party"`
	IsEntity   bool   `json:"is_entity"`
	IsEnum     bool   `json:"is_enum"`
}

// tldTokens are the leading segments that mark the start of a second,
// embedded bundle id inside a wrapped identifier.
var tldTokens = map[string]struct{}{
	"com": {}, "org": {}, "net": {}, "io": {}, "is": {}, "de": {}, "co": {},
}

// ParseTypeID splits a type identifier into namespace, bundle, category and
// type name. Identifiers with fewer than two segments come back with only
// Name set.
func ParseTypeID(id string) TypeID {
	parsed := TypeID{Full: id}
	if id == "" {
		return parsed
	}

	segments := strings.Split(id, ".")
	if len(segments) < 2 {
		parsed.Name = id
		parsed.classifyName()
		return parsed
	}

	// A wrapped third-party type repeats a TLD token after the catalog's
	// own three-segment namespace.
	if len(segments) >= 6 {
		if _, ok := tldTokens[segments[3]]; ok {
			parsed.ThirdParty = true
			parsed.Namespace = strings.Join(segments[:3], ".")

			rest := segments[3:]
			parsed.Bundle = strings.Join(rest[:3], ".")
			if len(rest) > 3 {
				parsed.Name = rest[len(rest)-1]
				if len(rest) > 4 {
					parsed.Category = strings.Join(rest[3:len(rest)-1], ".")
				}
			}
			parsed.classifyName()
			return parsed
		}
	}

	if len(segments) >= 3 {
		parsed.Bundle = strings.Join(segments[:3], ".")
		parsed.Namespace = strings.Join(segments[:2], ".")
		parsed.Name = segments[len(segments)-1]
		if len(segments) > 3 {
			parsed.Category = strings.Join(segments[3:len(segments)-1], ".")
		}
	} else {
		parsed.Namespace = segments[0]
		parsed.Name = segments[len(segments)-1]
	}

	parsed.classifyName()
	return parsed
}

func (t *TypeID) classifyName() {
	if t.Name == "" {
		return
	}
	switch {
	case strings.Contains(t.Name, "Entity"):
		t.IsEntity = true
	case strings.Contains(t.Name, "Mode"), strings.Contains(t.Name, "Option"):
		t.IsEnum = true
	}
}

// IsComplexTypeID reports whether id needs a type-table lookup to be
// meaningful: wrapped third-party identifiers and deeply namespaced ones.
func IsComplexTypeID(id string) bool {
	if id == "" {
		return false
	}
	parsed := ParseTypeID(id)
	return parsed.ThirdParty || strings.Count(id, ".") >= 3
}
