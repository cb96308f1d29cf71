package extractor

import (
	"strings"
)

// ParseInlineSignature parses the compact inline signature notation, e.g.
//
//	"in1, in2: str -> out1, out2: int"
//
// The text splits on the first "->" into an input side and an output side
// (the output side is empty when "->" is absent). The returned signature is
// named by the trimmed raw text itself, has no docstring and no field
// descriptions, and the parse never fails: malformed input degrades to
// verbatim names without annotations.
func ParseInlineSignature(text string) SignatureInfo {
	raw := strings.TrimSpace(text)
	left, right := raw, ""
	if i := strings.Index(raw, "->"); i >= 0 {
		left, right = raw[:i], raw[i+2:]
	}
	return SignatureInfo{
		Name:    raw,
		Inputs:  parseSignatureSide(left, FieldInput),
		Outputs: parseSignatureSide(right, FieldOutput),
	}
}

// parseSignatureSide parses one comma-separated side of the notation.
// Supported forms:
//
//	"a, b: str"        group type: every name shares the trailing annotation
//	"a: str, b: int"   per-field types
//	"a, b"             no types
//
// A side with exactly one colon is the group form; this is what
// disambiguates a shared-type name list from a per-field-typed list.
func parseSignatureSide(text string, kind FieldKind) []FieldInfo {
	side := strings.TrimSpace(text)
	if side == "" {
		return nil
	}

	if strings.Count(side, ":") == 1 {
		namesPart, typePart, _ := strings.Cut(side, ":")
		var annotation *string
		if t := strings.TrimSpace(typePart); t != "" {
			annotation = &t
		}
		var fields []FieldInfo
		for _, raw := range strings.Split(namesPart, ",") {
			name := strings.TrimSpace(raw)
			if name == "" {
				continue
			}
			fields = append(fields, FieldInfo{Name: name, Kind: kind, Annotation: annotation})
		}
		return fields
	}

	var fields []FieldInfo
	for _, raw := range strings.Split(side, ",") {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		field := FieldInfo{Kind: kind}
		if namePart, typePart, found := strings.Cut(token, ":"); found {
			field.Name = strings.TrimSpace(namePart)
			if t := strings.TrimSpace(typePart); t != "" {
				field.Annotation = &t
			}
		} else {
			field.Name = token
		}
		fields = append(fields, field)
	}
	return fields
}
