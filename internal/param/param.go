package param

import (
	"fmt"
	"slices"
	"strings"
)

// Kind discriminates the concrete parameter variants.
type Kind int

const (
	// KindPrimitive marks a root input supplied directly by the user or
	// environment, e.g. a file path.
	KindPrimitive Kind = iota
	// KindCollected marks a derived value produced by running a collector.
	KindCollected
	// KindChoice marks a primitive whose value is picked from an enumerated
	// list, e.g. a region selector.
	KindChoice
)

// String returns the lowercase name of the kind for diagnostics output.
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindCollected:
		return "collected"
	case KindChoice:
		return "choice"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Parameter is an immutable typed node descriptor. It serves both as a graph
// vertex (via TypeKey) and as a report-input declaration. Values are passed
// and stored by value; mutation happens only through With, which returns a
// new instance of the same variant.
type Parameter struct {
	// Name is unique within a version.
	Name string
	// Version is optional; the empty string matches any version of Name.
	Version string
	// Required defaults to true and is false whenever a default is supplied.
	Required bool
	// Root is true for primitive parameters and false for collected ones.
	Root bool
	// Kind is the concrete variant this descriptor was constructed as.
	Kind Kind

	// OutputType is the data type a collected parameter represents. It
	// back-references the type a collector must produce to satisfy it.
	// Only meaningful for KindCollected.
	OutputType string

	// Choices, Default and Multiselect are only meaningful for KindChoice.
	Choices     []string
	Default     string
	Multiselect bool
}

// NewPrimitive constructs a required primitive (root) parameter.
func NewPrimitive(name string) Parameter {
	return Parameter{
		Name:     name,
		Required: true,
		Root:     true,
		Kind:     KindPrimitive,
	}
}

// NewCollected constructs a required collected (derived) parameter. Its
// OutputType defaults to its own name; override with With(OutputType(...))
// when the parameter name and the produced data type diverge.
func NewCollected(name string) Parameter {
	return Parameter{
		Name:       name,
		Required:   true,
		Root:       false,
		Kind:       KindCollected,
		OutputType: name,
	}
}

// NewChoice constructs a choice parameter. A non-empty default must be a
// member of choices; this is the only construction-time invariant in the
// model and the only place it is rejected outright. Supplying a default
// makes the parameter optional.
func NewChoice(name string, choices []string, def string, multiselect bool) (Parameter, error) {
	if def != "" && !slices.Contains(choices, def) {
		return Parameter{}, fmt.Errorf("choice parameter %q: default %q is not one of the declared choices", name, def)
	}
	return Parameter{
		Name:        name,
		Required:    def == "",
		Root:        true,
		Kind:        KindChoice,
		Choices:     slices.Clone(choices),
		Default:     def,
		Multiselect: multiselect,
	}, nil
}

// ParseTypeKey parses a type key of the form "name" or "name_v{version}"
// back into a collected parameter, for callers that only hold the string
// form (CLI flags, URL queries). A trailing "_v" segment only counts as a
// version when the remainder is numeric, so names like "env_vars" survive
// the round trip.
func ParseTypeKey(key string) Parameter {
	if i := strings.LastIndex(key, "_v"); i > 0 {
		if v := key[i+2:]; isNumeric(v) {
			return NewCollected(key[:i]).With(Version(v))
		}
	}
	return NewCollected(key)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Override mutates a pending copy inside With. The original parameter is
// never touched.
type Override func(*Parameter)

// Version overrides the version requirement.
func Version(v string) Override {
	return func(p *Parameter) { p.Version = v }
}

// Required overrides the required flag.
func Required(required bool) Override {
	return func(p *Parameter) { p.Required = required }
}

// Name overrides the parameter name.
func Name(name string) Override {
	return func(p *Parameter) { p.Name = name }
}

// OutputType overrides the data type a collected parameter stands for.
func OutputType(t string) Override {
	return func(p *Parameter) { p.OutputType = t }
}

// With returns a copy of p with the given overrides applied. The receiver is
// left untouched and the copy keeps the receiver's concrete variant.
func (p Parameter) With(overrides ...Override) Parameter {
	out := p
	out.Choices = slices.Clone(p.Choices)
	for _, o := range overrides {
		o(&out)
	}
	return out
}

// TypeKey returns the canonical graph-vertex identity for this parameter:
// the bare name, or name_v{version} when a version is declared.
func (p Parameter) TypeKey() string {
	if p.Version == "" {
		return p.Name
	}
	return fmt.Sprintf("%s_v%s", p.Name, p.Version)
}

// Matches reports whether two parameters refer to the same type. Names must
// be equal; versions match when either side has no version requirement or
// both are exactly equal.
func (p Parameter) Matches(other Parameter) bool {
	if p.Name != other.Name {
		return false
	}
	if p.Version == "" || other.Version == "" {
		return true
	}
	return p.Version == other.Version
}
