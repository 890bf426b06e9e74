package dump_test

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/kindelia-archive/Lambolt/ast"
	"github.com/kindelia-archive/Lambolt/internal/dump"
	"github.com/kindelia-archive/Lambolt/parser"
)

func decode(t *testing.T, data []byte) []map[string]any {
	t.Helper()
	var out []map[string]any
	if err := yaml.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal dump: %v\n%s", err, data)
	}
	return out
}

func field(t *testing.T, m any, path ...string) any {
	t.Helper()
	for _, key := range path {
		mm, ok := m.(map[string]any)
		if !ok {
			t.Fatalf("%s: not a mapping: %#v", key, m)
		}
		m = mm[key]
	}
	return m
}

func TestMarshal_Rule(t *testing.T) {
	file, err := parser.File("(Id x) = x")
	if err != nil {
		t.Fatal(err)
	}
	data, err := dump.Marshal(file)
	if err != nil {
		t.Fatal(err)
	}
	out := decode(t, data)
	if len(out) != 1 {
		t.Fatalf("got %d rules", len(out))
	}
	if got := field(t, out[0], "lhs", "kind"); got != "ctr" {
		t.Errorf("lhs kind: got %v", got)
	}
	if got := field(t, out[0], "lhs", "name"); got != "Id" {
		t.Errorf("lhs name: got %v", got)
	}
	args, ok := field(t, out[0], "lhs", "args").([]any)
	if !ok || len(args) != 1 || field(t, args[0], "name") != "x" {
		t.Errorf("lhs args: got %#v", field(t, out[0], "lhs", "args"))
	}
	if got := field(t, out[0], "rhs", "kind"); got != "var" {
		t.Errorf("rhs kind: got %v", got)
	}
}

func TestMarshal_KeyOrder(t *testing.T) {
	data, err := dump.Marshal(ast.File{ast.NewRule(ast.NewCtr("Z"), ast.NewU32(7))})
	if err != nil {
		t.Fatal(err)
	}
	want := "- lhs:\n    kind: ctr\n    name: Z\n    args: []\n  rhs:\n    kind: u32\n    numb: 7\n"
	if string(data) != want {
		t.Errorf("got:\n%s\nwant:\n%s", data, want)
	}
}

func TestTerm_Variants(t *testing.T) {
	tests := []struct {
		src  string
		kind string
		keys []string
	}{
		{"x", "var", []string{"name"}},
		{"λx x", "lam", []string{"name", "body"}},
		{"[f a]", "app", []string{"func", "argm"}},
		{"let a = x; a", "let", []string{"name", "expr", "body"}},
		{"dup a b = x; a", "dup", []string{"nam0", "nam1", "expr", "body"}},
		{"(P a b)", "ctr", []string{"name", "args"}},
		{"#3", "u32", []string{"numb"}},
		{"{a - b}", "op2", []string{"oper", "val0", "val1"}},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			term, err := parser.Term(tt.src)
			if err != nil {
				t.Fatal(err)
			}
			var buf bytes.Buffer
			if err := dump.Write(&buf, dump.Term(term)); err != nil {
				t.Fatal(err)
			}
			var m map[string]any
			if err := yaml.Unmarshal(buf.Bytes(), &m); err != nil {
				t.Fatal(err)
			}
			if m["kind"] != tt.kind {
				t.Errorf("kind: got %v, want %s", m["kind"], tt.kind)
			}
			for _, k := range tt.keys {
				if _, ok := m[k]; !ok {
					t.Errorf("missing key %q in\n%s", k, buf.String())
				}
			}
			if len(m) != len(tt.keys)+1 {
				t.Errorf("got %d keys, want %d", len(m), len(tt.keys)+1)
			}
		})
	}
}

func TestTerm_ScalarsStayStrings(t *testing.T) {
	var buf bytes.Buffer
	if err := dump.Write(&buf, dump.Term(ast.NewOp2(ast.SUB, ast.NewVar("42"), ast.NewU32(1)))); err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatal(err)
	}
	if got := field(t, m, "oper"); got != "SUB" {
		t.Errorf("oper: got %v", got)
	}
	if got := field(t, m, "val0", "name"); got != "42" {
		t.Errorf("numeric name decoded as %T %v", got, got)
	}
	if got := field(t, m, "val1", "numb"); got != 1 {
		t.Errorf("numb: got %T %v", got, got)
	}
}

func TestMarshal_Empty(t *testing.T) {
	data, err := dump.Marshal(nil)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("got %q", data)
	}
}
