// Package dump renders Lambolt syntax trees as YAML for inspection.
//
// Every term becomes a mapping whose first key is "kind". Keys keep a fixed
// order so that dumps of the same tree are byte-identical:
//
//	- lhs:
//	    kind: ctr
//	    name: Id
//	    args:
//	      - kind: var
//	        name: x
//	  rhs:
//	    kind: var
//	    name: x
package dump

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/kindelia-archive/Lambolt/ast"
)

// Term returns the YAML node for t.
func Term(t ast.Term) *yaml.Node {
	switch t := t.(type) {
	case *ast.Var:
		return mapping("var", "name", str(t.Name))
	case *ast.Lam:
		return mapping("lam", "name", str(t.Name), "body", Term(t.Body))
	case *ast.App:
		return mapping("app", "func", Term(t.Func), "argm", Term(t.Argm))
	case *ast.Let:
		return mapping("let", "name", str(t.Name), "expr", Term(t.Expr), "body", Term(t.Body))
	case *ast.Dup:
		return mapping("dup",
			"nam0", str(t.Nam0), "nam1", str(t.Nam1),
			"expr", Term(t.Expr), "body", Term(t.Body))
	case *ast.Ctr:
		args := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, a := range t.Args {
			args.Content = append(args.Content, Term(a))
		}
		if len(args.Content) == 0 {
			args.Style = yaml.FlowStyle
		}
		return mapping("ctr", "name", str(t.Name), "args", args)
	case *ast.U32:
		return mapping("u32", "numb", &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!int",
			Value: strconv.FormatUint(uint64(t.Numb), 10),
		})
	case *ast.Op2:
		return mapping("op2", "oper", str(t.Oper.String()), "val0", Term(t.Val0), "val1", Term(t.Val1))
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

// Rule returns the YAML node for r.
func Rule(r ast.Rule) *yaml.Node {
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
		Content: []*yaml.Node{
			str("lhs"), Term(r.LHS),
			str("rhs"), Term(r.RHS),
		},
	}
}

// File returns the YAML node for f, a sequence of rules.
func File(f ast.File) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, r := range f {
		seq.Content = append(seq.Content, Rule(r))
	}
	if len(seq.Content) == 0 {
		seq.Style = yaml.FlowStyle
	}
	return seq
}

// Write encodes node to w with two-space indentation.
func Write(w io.Writer, node *yaml.Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// Marshal returns the YAML text of f.
func Marshal(f ast.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, File(f)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// mapping builds {kind: kind, k1: v1, ...}; kv alternates key strings and
// value nodes.
func mapping(kind string, kv ...any) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	n.Content = append(n.Content, str("kind"), str(kind))
	for i := 0; i+1 < len(kv); i += 2 {
		n.Content = append(n.Content, str(kv[i].(string)), kv[i+1].(*yaml.Node))
	}
	return n
}

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
