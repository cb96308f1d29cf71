package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// trackAssignment handles an assignment node, recognizing two shapes:
//
//	my_predict = dspy.Predict(MySignature)   builder call -> module record
//	result = my_predict(name="John")         module call  -> prediction record
//
// A chained assignment (a = b = rhs) binds every identifier target to the
// same resolved signature; the chain is processed once, at its outermost
// node. Annotated assignments and non-identifier targets are not recognized,
// and an assignment matching neither shape contributes nothing.
func (e *Extractor) trackAssignment(node *sitter.Node, source []byte, res *FileIntrospection) {
	if parent := node.Parent(); parent != nil && parent.Type() == "assignment" {
		// Inner link of a chain, already covered by the outermost node.
		return
	}
	if node.ChildByFieldName("type") != nil {
		// Annotated assignment: field declaration shape, not a binding.
		return
	}

	targets, rhs := assignmentChain(node, source)
	if len(targets) == 0 || rhs == nil || rhs.Type() != "call" {
		return
	}
	fn := rhs.ChildByFieldName("function")
	if fn == nil {
		return
	}

	line := int(node.StartPoint().Row) + 1
	column := int(node.StartPoint().Column) + 1

	// Builder call -> module record. The signature must resolve: a bare name
	// resolves against signatures discovered earlier in traversal order (no
	// forward resolution), a string literal is parsed as an inline signature
	// and registered under its own raw text.
	if name := trailingName(fn, source); name != "" && e.rec.Builders[name] {
		if sigName, ok := e.resolveSignatureArg(rhs, source, res); ok {
			for _, target := range targets {
				res.Modules[target] = ModuleInfo{
					Name:      target,
					Signature: sigName,
					Line:      line,
					Column:    column,
				}
			}
		}
	}

	// Module call -> prediction record. The callee must be a bare name
	// currently bound as a module; the prediction copies that module's
	// signature as known right now.
	if fn.Type() == "identifier" {
		if mod, ok := res.Modules[fn.Content(source)]; ok {
			for _, target := range targets {
				res.Predictions[target] = PredictionInfo{
					Name:      target,
					Signature: mod.Signature,
					Line:      line,
					Column:    column,
				}
			}
		}
	}
}

// assignmentChain collects the identifier targets of an assignment chain and
// returns them with the final right-hand side. Tuple and attribute targets
// are skipped; the chain itself is still followed.
func assignmentChain(node *sitter.Node, source []byte) ([]string, *sitter.Node) {
	var targets []string
	cur := node
	for cur != nil && cur.Type() == "assignment" {
		if left := cur.ChildByFieldName("left"); left != nil && left.Type() == "identifier" {
			targets = append(targets, left.Content(source))
		}
		cur = cur.ChildByFieldName("right")
	}
	return targets, cur
}

// resolveSignatureArg resolves the signature referenced by the first
// positional argument of a builder call. Keyword-passed signatures are not
// recognized.
func (e *Extractor) resolveSignatureArg(call *sitter.Node, source []byte, res *FileIntrospection) (string, bool) {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return "", false
	}

	var first *sitter.Node
	for _, arg := range namedChildren(args) {
		if arg.Type() == "keyword_argument" || arg.Type() == "comment" {
			continue
		}
		first = arg
		break
	}
	if first == nil {
		return "", false
	}

	switch first.Type() {
	case "identifier":
		name := first.Content(source)
		if _, ok := res.Signatures[name]; ok {
			return name, true
		}
		return "", false

	case "string", "concatenated_string":
		text, ok := stringLiteral(first, source)
		if !ok {
			return "", false
		}
		sig := ParseInlineSignature(text)
		res.Signatures[sig.Name] = sig
		return sig.Name, true
	}

	return "", false
}
