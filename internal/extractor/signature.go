package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// extractSignature handles a class_definition node. Classes whose direct
// superclass list contains a recognized signature base (matched by bare name
// or by the trailing name of a dotted reference) produce a SignatureInfo
// built from their annotated field declarations. Indirect subclassing is not
// recognized: only the bases written on the class line are scanned.
func (e *Extractor) extractSignature(class *sitter.Node, source []byte, res *FileIntrospection) {
	nameNode := class.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	if !e.hasSignatureBase(class, source) {
		return
	}

	className := nameNode.Content(source)
	sig := SignatureInfo{Name: className}

	body := class.ChildByFieldName("body")
	if body != nil {
		seen := 0
		for _, stmt := range namedChildren(body) {
			if stmt.Type() == "comment" {
				continue
			}
			inner := stmt
			if inner.Type() == "expression_statement" && inner.NamedChildCount() == 1 {
				inner = inner.NamedChild(0)
			}
			seen++

			// The leading string-literal statement is the docstring.
			if seen == 1 {
				if raw, ok := stringLiteral(inner, source); ok {
					doc := cleanDocstring(raw)
					sig.Docstring = &doc
					continue
				}
			}

			if f, ok := e.extractField(inner, source); ok {
				if f.Kind == FieldInput {
					sig.Inputs = append(sig.Inputs, f)
				} else {
					sig.Outputs = append(sig.Outputs, f)
				}
			}
			// Anything else in the body (methods, bare assignments, nested
			// classes, ...) is skipped without complaint.
		}
	}

	res.Signatures[className] = sig
}

func (e *Extractor) hasSignatureBase(class *sitter.Node, source []byte) bool {
	supers := class.ChildByFieldName("superclasses")
	if supers == nil {
		return false
	}
	for _, base := range namedChildren(supers) {
		if name := trailingName(base, source); name != "" && e.rec.SignatureBases[name] {
			return true
		}
	}
	return false
}

// extractField matches the shape `name: type = InputField(...)` (or
// OutputField). The declaration must be annotated and initialized with a call
// to a recognized field constructor; everything else is rejected.
func (e *Extractor) extractField(node *sitter.Node, source []byte) (FieldInfo, bool) {
	if node.Type() != "assignment" {
		return FieldInfo{}, false
	}
	left := node.ChildByFieldName("left")
	typeNode := node.ChildByFieldName("type")
	value := node.ChildByFieldName("right")
	if left == nil || left.Type() != "identifier" || typeNode == nil || value == nil {
		return FieldInfo{}, false
	}
	if value.Type() != "call" {
		return FieldInfo{}, false
	}

	callee := trailingName(value.ChildByFieldName("function"), source)
	var kind FieldKind
	switch {
	case callee != "" && e.rec.InputFields[callee]:
		kind = FieldInput
	case callee != "" && e.rec.OutputFields[callee]:
		kind = FieldOutput
	default:
		return FieldInfo{}, false
	}

	annotation := typeNode.Content(source)
	return FieldInfo{
		Name:        left.Content(source),
		Kind:        kind,
		Annotation:  &annotation,
		Description: fieldDescription(value, source),
	}, true
}

// fieldDescription extracts a description from a field constructor call: the
// first `desc` or `description` keyword argument in source order, else the
// first positional string literal, else nil.
func fieldDescription(call *sitter.Node, source []byte) *string {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}

	for _, arg := range namedChildren(args) {
		if arg.Type() != "keyword_argument" {
			continue
		}
		keyNode := arg.ChildByFieldName("name")
		valNode := arg.ChildByFieldName("value")
		if keyNode == nil || valNode == nil {
			continue
		}
		key := keyNode.Content(source)
		if key == "desc" || key == "description" {
			text := exprText(valNode, source)
			return &text
		}
	}

	for _, arg := range namedChildren(args) {
		if arg.Type() == "keyword_argument" {
			continue
		}
		if s, ok := stringLiteral(arg, source); ok {
			return &s
		}
	}

	return nil
}
