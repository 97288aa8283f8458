package spec

import "strings"

// Reference resolution is deliberately single-hop: the inlined target is not
// scanned for further $ref entries. Unsupported pointer forms (including
// remote references) pass through unresolved instead of erroring.

// resolveParameter inlines a #/components/parameters/<name> (3.x) or
// #/parameters/<name> (2.0) reference. The original fragment is returned when
// the pointer form is unsupported or the target is missing.
func (d *Document) resolveParameter(param map[string]interface{}) map[string]interface{} {
	ref := getString(param, "$ref")
	if ref == "" {
		return param
	}

	name := ref[strings.LastIndex(ref, "/")+1:]
	switch {
	case strings.HasPrefix(ref, "#/components/parameters/"):
		if target, ok := asMap(asMap(d.root["components"])["parameters"])[name]; ok {
			return asMap(target)
		}
	case strings.HasPrefix(ref, "#/parameters/"):
		if target, ok := asMap(d.root["parameters"])[name]; ok {
			return asMap(target)
		}
	}
	return param
}

// resolveSchema inlines a #/components/schemas/<name> (3.x) or
// #/definitions/<name> (2.0) reference, falling back to the original fragment.
func (d *Document) resolveSchema(schema map[string]interface{}) map[string]interface{} {
	ref := getString(schema, "$ref")
	if ref == "" {
		return schema
	}

	name := ref[strings.LastIndex(ref, "/")+1:]
	switch {
	case strings.HasPrefix(ref, "#/components/schemas/"):
		if target, ok := asMap(asMap(d.root["components"])["schemas"])[name]; ok {
			return asMap(target)
		}
	case strings.HasPrefix(ref, "#/definitions/"):
		if target, ok := asMap(d.root["definitions"])[name]; ok {
			return asMap(target)
		}
	}
	return schema
}

// flattenCombinators substitutes a oneOf/anyOf schema with its first listed
// alternative, resolving that alternative's own $ref first. oneOf wins when
// both combinators are present. This is first-alternative simplification, not
// full union-type support.
func (d *Document) flattenCombinators(schema map[string]interface{}) map[string]interface{} {
	for _, key := range []string{"oneOf", "anyOf"} {
		alts := asSlice(schema[key])
		if len(alts) == 0 {
			continue
		}

		first := d.resolveSchema(asMap(alts[0]))
		merged := make(map[string]interface{}, len(schema)+len(first))
		for k, v := range schema {
			merged[k] = v
		}
		for k, v := range first {
			merged[k] = v
		}
		delete(merged, key)
		return merged
	}
	return schema
}
