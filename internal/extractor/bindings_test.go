package extractor

import (
	"testing"
)

func mustModule(t *testing.T, res FileIntrospection, name string) ModuleInfo {
	t.Helper()
	mod, ok := res.Modules[name]
	if !ok {
		t.Fatalf("expected module %q, have %+v", name, res.Modules)
	}
	return mod
}

func mustPrediction(t *testing.T, res FileIntrospection, name string) PredictionInfo {
	t.Helper()
	pred, ok := res.Predictions[name]
	if !ok {
		t.Fatalf("expected prediction %q, have %+v", name, res.Predictions)
	}
	return pred
}

func TestModuleAndPredictionBinding(t *testing.T) {
	src := `import dspy


class MySignature(dspy.Signature):
    name: str = dspy.InputField()
    output: str = dspy.OutputField()


my_predict = dspy.Predict(MySignature)
result = my_predict(name="John")
`

	res := introspectSource(t, src)

	mod := mustModule(t, res, "my_predict")
	if mod.Signature != "MySignature" {
		t.Fatalf("expected module signature MySignature, got %q", mod.Signature)
	}
	if mod.Line != 9 || mod.Column != 1 {
		t.Fatalf("expected module at 9:1, got %d:%d", mod.Line, mod.Column)
	}

	pred := mustPrediction(t, res, "result")
	if pred.Signature != "MySignature" {
		t.Fatalf("prediction must reference the signature, not the module; got %q", pred.Signature)
	}
	if pred.Line != 10 || pred.Column != 1 {
		t.Fatalf("expected prediction at 10:1, got %d:%d", pred.Line, pred.Column)
	}
}

func TestAllRecognizedBuilders(t *testing.T) {
	src := `import dspy


class Sig(dspy.Signature):
    q: str = dspy.InputField()


m1 = dspy.Predict(Sig)
m2 = dspy.ReAct(Sig)
m3 = dspy.ChainOfThought(Sig)
m4 = dspy.CodeAct(Sig)
m5 = dspy.MultiChainComparison(Sig)
m6 = dspy.ProgramOfThought(Sig)
m7 = ChainOfThought(Sig)
m8 = dspy.NotABuilder(Sig)
`

	res := introspectSource(t, src)

	for _, name := range []string{"m1", "m2", "m3", "m4", "m5", "m6", "m7"} {
		mod := mustModule(t, res, name)
		if mod.Signature != "Sig" {
			t.Fatalf("%s: expected signature Sig, got %q", name, mod.Signature)
		}
	}
	if _, ok := res.Modules["m8"]; ok {
		t.Fatalf("unrecognized builder must not create a module record")
	}
}

func TestInlineSignatureModule(t *testing.T) {
	src := `import dspy

my_predict = dspy.Predict("name: str, age: int -> output: str")
result = my_predict(name="John", age=30)
`

	res := introspectSource(t, src)

	key := "name: str, age: int -> output: str"
	sig, ok := res.Signatures[key]
	if !ok {
		t.Fatalf("expected synthesized signature under raw text key, have %v", signatureNames(res))
	}
	if len(sig.Inputs) != 2 || len(sig.Outputs) != 1 {
		t.Fatalf("expected 2 inputs and 1 output, got %+v", sig)
	}
	if sig.Docstring != nil {
		t.Fatalf("inline signatures have no docstring")
	}

	if mod := mustModule(t, res, "my_predict"); mod.Signature != key {
		t.Fatalf("expected module to reference raw text key, got %q", mod.Signature)
	}
	if pred := mustPrediction(t, res, "result"); pred.Signature != key {
		t.Fatalf("expected prediction to reference raw text key, got %q", pred.Signature)
	}
}

func TestForwardReferenceNotResolved(t *testing.T) {
	src := `import dspy

early = dspy.Predict(LaterSig)


class LaterSig(dspy.Signature):
    q: str = dspy.InputField()


late = dspy.Predict(LaterSig)
`

	res := introspectSource(t, src)

	if _, ok := res.Modules["early"]; ok {
		t.Fatalf("forward reference must not resolve")
	}
	if mod := mustModule(t, res, "late"); mod.Signature != "LaterSig" {
		t.Fatalf("expected late binding to resolve, got %q", mod.Signature)
	}
}

func TestRebindingReplacesRecord(t *testing.T) {
	src := `import dspy


class SigA(dspy.Signature):
    a: str = dspy.InputField()


class SigB(dspy.Signature):
    b: str = dspy.InputField()


mod = dspy.Predict(SigA)
mod = dspy.Predict(SigB)
res = mod(b="x")
`

	res := introspectSource(t, src)

	if mod := mustModule(t, res, "mod"); mod.Signature != "SigB" {
		t.Fatalf("expected rebinding to win, got %q", mod.Signature)
	}
	if pred := mustPrediction(t, res, "res"); pred.Signature != "SigB" {
		t.Fatalf("expected prediction to reflect rebinding, got %q", pred.Signature)
	}
}

func TestPredictionCopiesSignatureAtCallSite(t *testing.T) {
	src := `import dspy


class SigA(dspy.Signature):
    a: str = dspy.InputField()


class SigB(dspy.Signature):
    b: str = dspy.InputField()


mod = dspy.Predict(SigA)
res = mod(a="x")
mod = dspy.Predict(SigB)
`

	res := introspectSource(t, src)

	// The prediction keeps the signature the module had at the call site,
	// even though the module was later rebound.
	if pred := mustPrediction(t, res, "res"); pred.Signature != "SigA" {
		t.Fatalf("expected prediction to keep SigA, got %q", pred.Signature)
	}
	if mod := mustModule(t, res, "mod"); mod.Signature != "SigB" {
		t.Fatalf("expected module rebound to SigB, got %q", mod.Signature)
	}
}

func TestChainedTargetsBindIndependently(t *testing.T) {
	src := `import dspy


class Sig(dspy.Signature):
    q: str = dspy.InputField()


a = b = dspy.Predict(Sig)
x = y = a(q="hi")
`

	res := introspectSource(t, src)

	modA := mustModule(t, res, "a")
	modB := mustModule(t, res, "b")
	if modA.Signature != "Sig" || modB.Signature != "Sig" {
		t.Fatalf("expected both targets bound to Sig, got %+v %+v", modA, modB)
	}
	if modA.Line != modB.Line || modA.Column != modB.Column {
		t.Fatalf("chained targets share the statement position, got %+v %+v", modA, modB)
	}

	predX := mustPrediction(t, res, "x")
	predY := mustPrediction(t, res, "y")
	if predX.Signature != "Sig" || predY.Signature != "Sig" {
		t.Fatalf("expected both prediction targets bound, got %+v %+v", predX, predY)
	}
}

func TestUnrecognizedBindingShapes(t *testing.T) {
	src := `import dspy


class Sig(dspy.Signature):
    q: str = dspy.InputField()


keyword_only = dspy.Predict(signature=Sig)
annotated: dspy.Predict = dspy.Predict(Sig)
no_args = dspy.Predict()
not_a_call = dspy.Predict
attr_arg = dspy.Predict(pkg.Sig)


class Holder:
    def __init__(self):
        self.predict = dspy.Predict(Sig)
`

	res := introspectSource(t, src)

	for _, name := range []string{"keyword_only", "annotated", "no_args", "not_a_call", "attr_arg"} {
		if _, ok := res.Modules[name]; ok {
			t.Fatalf("%s must not create a module record", name)
		}
	}
	if len(res.Modules) != 0 {
		t.Fatalf("attribute targets must not create records, got %+v", res.Modules)
	}
}

func TestPredictionRequiresBareModuleName(t *testing.T) {
	src := `import dspy


class Sig(dspy.Signature):
    q: str = dspy.InputField()


mod = dspy.Predict(Sig)
viaattr = obj.mod(q="x")
unknown = other(q="x")
`

	res := introspectSource(t, src)

	if _, ok := res.Predictions["viaattr"]; ok {
		t.Fatalf("dotted callee must not create a prediction")
	}
	if _, ok := res.Predictions["unknown"]; ok {
		t.Fatalf("unknown callee must not create a prediction")
	}
}

func TestTupleTargetsSkipped(t *testing.T) {
	src := `import dspy


class Sig(dspy.Signature):
    q: str = dspy.InputField()


a, b = dspy.Predict(Sig), None
`

	res := introspectSource(t, src)
	if len(res.Modules) != 0 {
		t.Fatalf("tuple unpacking must not create module records, got %+v", res.Modules)
	}
}

func TestCustomRecognizers(t *testing.T) {
	src := `import mylib


class Sig(mylib.Task):
    q: str = mylib.In()
    a: str = mylib.Out()


runner = mylib.Run(Sig)
`

	rec := NewRecognizers(
		[]string{"Run"},
		[]string{"Task"},
		[]string{"In"},
		[]string{"Out"},
	)
	res := NewWithRecognizers(rec).ExtractSource("test.py", []byte(src))

	sig := mustSignature(t, res, "Sig")
	if len(sig.Inputs) != 1 || len(sig.Outputs) != 1 {
		t.Fatalf("expected custom field constructors recognized, got %+v", sig)
	}
	if mod := mustModule(t, res, "runner"); mod.Signature != "Sig" {
		t.Fatalf("expected custom builder recognized, got %+v", res.Modules)
	}
}
