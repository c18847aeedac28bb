package dispatch

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/boardkit/flashctl/internal/profile"
)

// Kind tags what an Operation does.
type Kind int

const (
	NoOp Kind = iota
	External
	Forward
	Unsupported
)

func (k Kind) String() string {
	switch k {
	case External:
		return profile.KindExternal
	case Forward:
		return profile.KindForward
	case Unsupported:
		return profile.KindUnsupported
	default:
		return profile.KindNoOp
	}
}

func parseKind(s string) (Kind, error) {
	switch s {
	case profile.KindExternal:
		return External, nil
	case profile.KindForward:
		return Forward, nil
	case profile.KindUnsupported:
		return Unsupported, nil
	case profile.KindNoOp:
		return NoOp, nil
	default:
		return 0, fmt.Errorf("unknown operation kind %q: supported kinds are %s", s, strings.Join(profile.ValidKinds, ", "))
	}
}

// Operation is one registry entry. Only the fields for its Kind are set:
// Tool and args for External, Target for Forward, Message for Unsupported.
type Operation struct {
	Name        string
	Kind        Kind
	Description string
	Tool        string
	Target      string
	Message     string

	rawArgs []string
	args    []*template.Template
}

// ArgTemplates returns the unexpanded argument templates.
func (o *Operation) ArgTemplates() []string {
	return append([]string(nil), o.rawArgs...)
}

// Registry is the fixed operation table of one profile.
type Registry struct {
	ops   map[string]*Operation
	order []string
}

// NewRegistry compiles the operations of p. Argument templates are parsed
// and test-expanded so that a bad field name fails before any tool starts.
func NewRegistry(p *profile.Profile) (*Registry, error) {
	r := &Registry{ops: make(map[string]*Operation, len(p.Operations))}

	for _, def := range p.Operations {
		if _, dup := r.ops[def.Name]; dup {
			return nil, fmt.Errorf("operation %q defined twice", def.Name)
		}
		kind, err := parseKind(def.Kind)
		if err != nil {
			return nil, fmt.Errorf("operation %q: %w", def.Name, err)
		}

		op := &Operation{
			Name:        def.Name,
			Kind:        kind,
			Description: def.Description,
		}
		switch kind {
		case External:
			if def.Tool == "" {
				return nil, fmt.Errorf("operation %q: external operation needs a tool", def.Name)
			}
			op.Tool = def.Tool
			op.rawArgs = append([]string(nil), def.Args...)
			for i, a := range def.Args {
				tmpl, err := template.New(fmt.Sprintf("%s[%d]", def.Name, i)).Option("missingkey=error").Parse(a)
				if err != nil {
					return nil, fmt.Errorf("operation %q: parsing argument %q: %w", def.Name, a, err)
				}
				if err := tmpl.Execute(io.Discard, argData{}); err != nil {
					return nil, fmt.Errorf("operation %q: argument %q: %w", def.Name, a, err)
				}
				op.args = append(op.args, tmpl)
			}
		case Forward:
			if def.Target == "" {
				return nil, fmt.Errorf("operation %q: forward operation needs a target", def.Name)
			}
			op.Target = def.Target
		case Unsupported:
			op.Message = def.Message
			if op.Message == "" {
				op.Message = "Unsupported."
			}
		}

		r.ops[op.Name] = op
		r.order = append(r.order, op.Name)
	}
	return r, nil
}

// Lookup returns the named operation.
func (r *Registry) Lookup(name string) (*Operation, bool) {
	op, ok := r.ops[name]
	return op, ok
}

// Operations returns every operation in profile order.
func (r *Registry) Operations() []*Operation {
	out := make([]*Operation, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.ops[name])
	}
	return out
}

// argData is the value argument templates are expanded against.
type argData struct {
	Platform      string
	Target        string
	ProgPort      string
	CommPort      string
	Baud          int
	BuildDir      string
	Bitstream     string
	FirmwareImage string
	OpenOCDConfig string
}

func (o *Operation) expandArgs(data argData) ([]string, error) {
	args := make([]string, 0, len(o.args))
	for _, tmpl := range o.args {
		var b strings.Builder
		if err := tmpl.Execute(&b, data); err != nil {
			return nil, fmt.Errorf("expanding arguments of %s: %w", o.Name, err)
		}
		args = append(args, b.String())
	}
	return args, nil
}
