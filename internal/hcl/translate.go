package hcl

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/typeflow/internal/config"
	"github.com/vk/typeflow/internal/ctxlog"
	"github.com/vk/typeflow/internal/param"
	"github.com/vk/typeflow/internal/schema"
)

// role records which block a parameter came from, because the default kind
// of an undeclared parameter depends on its position: collector inputs are
// primitives, everything else is collected.
type role int

const (
	roleCollector role = iota
	roleTransformer
	roleReport
)

func (r role) String() string {
	switch r {
	case roleCollector:
		return "collector"
	case roleTransformer:
		return "transformer"
	default:
		return "report"
	}
}

// translateStep converts a collector or transformer manifest into the
// format-agnostic model.
func (l *Loader) translateStep(ctx context.Context, m *schema.StepManifest, r role) (*config.StepDefinition, error) {
	def := &config.StepDefinition{
		Name:        m.Name,
		Description: m.Description,
	}
	for _, in := range m.Inputs {
		defaultKind := param.KindCollected
		if r == roleCollector {
			defaultKind = param.KindPrimitive
		}
		p, err := l.translateParam(ctx, in, defaultKind)
		if err != nil {
			return nil, fmt.Errorf("in %s %q, input %q: %w", r, m.Name, in.Name, err)
		}
		def.Inputs = append(def.Inputs, p)
	}
	for _, out := range m.Outputs {
		p, err := l.translateParam(ctx, out, param.KindCollected)
		if err != nil {
			return nil, fmt.Errorf("in %s %q, output %q: %w", r, m.Name, out.Name, err)
		}
		def.Outputs = append(def.Outputs, p)
	}
	return def, nil
}

// translateReport converts a report manifest into the format-agnostic model.
func (l *Loader) translateReport(ctx context.Context, m *schema.ReportManifest) (*config.ReportDefinition, error) {
	def := &config.ReportDefinition{
		Title:       m.Title,
		Description: m.Description,
	}
	for _, in := range m.Inputs {
		p, err := l.translateParam(ctx, in, param.KindCollected)
		if err != nil {
			return nil, fmt.Errorf("in report %q, input %q: %w", m.Title, in.Name, err)
		}
		def.Inputs = append(def.Inputs, p)
	}
	return def, nil
}

// translateParam converts one input/output block into a parameter plus its
// presentation metadata. The block's explicit kind wins; otherwise the
// presence of choices makes it a choice parameter, and the positional
// default applies last.
func (l *Loader) translateParam(ctx context.Context, b *schema.ParamBlock, defaultKind param.Kind) (*config.ParamDefinition, error) {
	kind, err := resolveKind(b, defaultKind)
	if err != nil {
		return nil, err
	}

	var p param.Parameter
	switch kind {
	case param.KindChoice:
		def, err := l.evalChoiceDefault(ctx, b)
		if err != nil {
			return nil, err
		}
		p, err = param.NewChoice(b.Name, b.Choices, def, b.Multiselect)
		if err != nil {
			return nil, err
		}
	case param.KindPrimitive:
		if b.Default != nil {
			return nil, fmt.Errorf("default is only valid on choice parameters")
		}
		p = param.NewPrimitive(b.Name)
	default:
		if b.Default != nil {
			return nil, fmt.Errorf("default is only valid on choice parameters")
		}
		p = param.NewCollected(b.Name)
		if b.OutputType != "" {
			p = p.With(param.OutputType(b.OutputType))
		}
	}

	if b.Version != "" {
		p = p.With(param.Version(b.Version))
	}
	if b.Required != nil {
		p = p.With(param.Required(*b.Required))
	}

	return &config.ParamDefinition{
		Parameter:   p,
		Group:       b.Group,
		Description: b.Description,
	}, nil
}

func resolveKind(b *schema.ParamBlock, defaultKind param.Kind) (param.Kind, error) {
	switch b.Kind {
	case "":
		if len(b.Choices) > 0 {
			return param.KindChoice, nil
		}
		return defaultKind, nil
	case "primitive":
		if len(b.Choices) > 0 {
			return 0, fmt.Errorf("choices require kind \"choice\"")
		}
		return param.KindPrimitive, nil
	case "collected":
		if len(b.Choices) > 0 {
			return 0, fmt.Errorf("choices require kind \"choice\"")
		}
		return param.KindCollected, nil
	case "choice":
		return param.KindChoice, nil
	default:
		return 0, fmt.Errorf("unknown parameter kind %q", b.Kind)
	}
}

// evalChoiceDefault evaluates the default expression, if any, and converts
// it to the string domain choices live in. A null default is treated as
// absent, matching how optional attributes decode.
func (l *Loader) evalChoiceDefault(ctx context.Context, b *schema.ParamBlock) (string, error) {
	if b.Default == nil {
		return "", nil
	}
	val, diags := b.Default.Value(nil)
	if diags.HasErrors() {
		return "", fmt.Errorf("invalid default value: %w", diags)
	}
	if val.IsNull() {
		return "", nil
	}
	converted, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("cannot convert default of type %s to string: %w", val.Type().FriendlyName(), err)
	}
	ctxlog.FromContext(ctx).Debug("Evaluated choice default.", "param", b.Name, "default", converted.AsString())
	return converted.AsString(), nil
}
