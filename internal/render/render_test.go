package render_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/kindelia-archive/Lambolt/internal/render"
	"github.com/kindelia-archive/Lambolt/parser"
)

func TestRenderer_SyntaxError(t *testing.T) {
	_, err := parser.File("(Z) = (Z)\n(Foo = bar")
	if err == nil {
		t.Fatal("expected error")
	}
	out := render.New(&bytes.Buffer{}).Error("input.lam", err)

	for _, want := range []string{
		"input.lam:2:6",
		"error:",
		`expected Term, found "="`,
		"(Foo = bar",
		"^",
		"note: while parsing definition at line 2, column 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "(Z) = (Z)") {
		t.Errorf("output shows an unrelated line:\n%s", out)
	}
	if n := strings.Count(out, "\n"); n != 3 {
		t.Errorf("got %d line breaks, want 3:\n%s", n, out)
	}
}

func TestRenderer_LeafErrorHasNoNote(t *testing.T) {
	_, err := parser.Term("{a @ b")
	if err == nil {
		t.Fatal("expected error")
	}
	out := render.New(&bytes.Buffer{}).Error("t.lam", err)
	if strings.Contains(out, "note:") {
		t.Errorf("unexpected note:\n%s", out)
	}
	if !strings.Contains(out, `expected "}"`) {
		t.Errorf("output:\n%s", out)
	}
}

func TestRenderer_PlainError(t *testing.T) {
	out := render.New(&bytes.Buffer{}).Error("gone.lam", errors.New("no such file"))
	if !strings.Contains(out, "gone.lam") || !strings.Contains(out, "no such file") {
		t.Errorf("got %q", out)
	}
	if strings.Contains(out, "\n") {
		t.Errorf("plain error spans lines: %q", out)
	}
}

func TestRenderer_OK(t *testing.T) {
	r := render.New(&bytes.Buffer{})
	if out := r.OK("a.lam", 1); !strings.Contains(out, "ok (1 rule)") {
		t.Errorf("got %q", out)
	}
	if out := r.OK("a.lam", 3); !strings.Contains(out, "ok (3 rules)") {
		t.Errorf("got %q", out)
	}
}
