package facts

// Delta captures added and removed records between two introspection
// snapshots of the same file. A changed record (same key, different content)
// appears in both sides.
type Delta struct {
	Added   Document `json:"added"`
	Removed Document `json:"removed"`
}

// ComputeDelta computes record-level additions and removals between two
// snapshots.
func ComputeDelta(prev, next Document) Delta {
	return Delta{
		Added:   diffDocuments(prev, next),
		Removed: diffDocuments(next, prev),
	}
}

// diffDocuments returns the records of to that are absent from (or differ
// in) from.
func diffDocuments(from, to Document) Document {
	out := EmptyDocument(to.File)
	out.Signatures = diffKeyed(from.Signatures, to.Signatures, signatureKey)
	out.Modules = diffKeyed(from.Modules, to.Modules, moduleKey)
	out.Predictions = diffKeyed(from.Predictions, to.Predictions, predictionKey)
	return out
}

func diffKeyed[T any](from, to map[string]T, key func(T) string) map[string]T {
	diff := map[string]T{}
	for name, row := range to {
		prev, ok := from[name]
		if !ok || key(prev) != key(row) {
			diff[name] = row
		}
	}
	return diff
}

func signatureKey(r SignatureRow) string {
	k := r.Name + "|" + strKey(r.Docstring)
	for _, f := range r.Inputs {
		k += "|" + fieldKey(f)
	}
	k += "|->"
	for _, f := range r.Outputs {
		k += "|" + fieldKey(f)
	}
	return k
}

func fieldKey(r FieldRow) string {
	return r.Name + "|" + r.Kind + "|" + strKey(r.Annotation) + "|" + strKey(r.Description)
}

func moduleKey(r ModuleRow) string {
	return r.Name + "|" + r.Signature + "|" + intKey(r.Line) + "|" + intKey(r.Column)
}

func predictionKey(r PredictionRow) string {
	return r.Name + "|" + r.Signature + "|" + intKey(r.Line) + "|" + intKey(r.Column)
}

func strKey(p *string) string {
	if p == nil {
		return "\x00"
	}
	return *p
}

func intKey(v int) string {
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
		if v == 0 {
			break
		}
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
