package settings

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/genlogcfg/internal/ctxlog"
	"github.com/vk/genlogcfg/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

//go:embed builtin.hcl
var builtinHCL []byte

const builtinFilename = "builtin.hcl"

// fileRoot decodes every top-level block a settings file may contain.
type fileRoot struct {
	Settings *settingsBlock `hcl:"settings,block"`
	Triggers []*triggerBlock `hcl:"trigger,block"`
}

type settingsBlock struct {
	Protocol *string `hcl:"protocol,optional"`
	Trigger  *string `hcl:"trigger,optional"`
	EcuID    *string `hcl:"ecu_id,optional"`
}

type triggerBlock struct {
	Name       string            `hcl:"name,label"`
	Requires   []string          `hcl:"requires,optional"`
	Parameters []*parameterBlock `hcl:"parameter,block"`
	Conditions []*conditionBlock `hcl:"condition,block"`
}

type parameterBlock struct {
	Name       string `hcl:"name,label"`
	Comment    string `hcl:"comment,optional"`
	ParamID    string `hcl:"paramid"`
	DataBits   int    `hcl:"databits,optional"`
	OffsetBits int    `hcl:"offsetbits,optional"`
	Visible    bool   `hcl:"visible,optional"`
}

type conditionBlock struct {
	Action  string `hcl:"action,label"`
	Comment string `hcl:"comment,optional"`
	// RPN is evaluated by hand so that mixed string/number lists decode.
	RPN hcl.Expression `hcl:"rpn"`
}

// Loader reads settings files. Env is exposed to expressions as the `env`
// object.
type Loader struct {
	Env map[string]string
}

// NewLoader creates a loader that sees the process environment.
func NewLoader() *Loader {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			env[k] = v
		}
	}
	return &Loader{Env: env}
}

// Load returns the built-in settings merged with each file in paths, in
// order. A directory contributes its .hcl files in lexical order. Later files override settings and same-named triggers. The result
// is not validated.
func (l *Loader) Load(ctx context.Context, paths ...string) (*Settings, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Settings loader started.", "path_count", len(paths))

	s := &Settings{
		Protocol: DefaultProtocol,
		Trigger:  DefaultTrigger,
		Triggers: make(map[string]*Trigger),
	}
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCL(builtinHCL, builtinFilename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse built-in settings: %w", diags)
	}
	if err := l.merge(ctx, s, file.Body, builtinFilename); err != nil {
		return nil, err
	}

	files, err := fsutil.ExpandPaths(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered settings files.", "count", len(files))

	for _, path := range files {
		file, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse settings file %s: %w", path, diags)
		}
		if err := l.merge(ctx, s, file.Body, path); err != nil {
			return nil, err
		}
	}

	logger.Debug("Settings loading complete.", "protocol", s.Protocol, "trigger", s.Trigger, "triggers", len(s.Triggers))
	return s, nil
}

func (l *Loader) evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(l.Env))
	for k, v := range l.Env {
		vars[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}

// merge decodes one file body into s.
func (l *Loader) merge(ctx context.Context, s *Settings, body hcl.Body, filename string) error {
	logger := ctxlog.FromContext(ctx)
	evalCtx := l.evalContext()

	var root fileRoot
	if diags := gohcl.DecodeBody(body, evalCtx, &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode settings file %s: %w", filename, diags)
	}

	if b := root.Settings; b != nil {
		if b.Protocol != nil {
			s.Protocol = *b.Protocol
		}
		if b.Trigger != nil {
			s.Trigger = *b.Trigger
		}
		if b.EcuID != nil {
			s.EcuID = *b.EcuID
		}
	}

	for _, tb := range root.Triggers {
		t, err := translateTrigger(tb, evalCtx)
		if err != nil {
			return fmt.Errorf("in %s: %w", filename, err)
		}
		if _, exists := s.Triggers[t.Name]; exists {
			logger.Debug("Trigger overridden.", "trigger", t.Name, "file", filename)
		}
		s.Triggers[t.Name] = t
	}
	return nil
}

func translateTrigger(tb *triggerBlock, evalCtx *hcl.EvalContext) (*Trigger, error) {
	t := &Trigger{
		Name:     tb.Name,
		Requires: tb.Requires,
	}
	for _, pb := range tb.Parameters {
		if pb.DataBits < 0 || pb.OffsetBits < 0 {
			return nil, fmt.Errorf("%w %q: parameter %q has a negative bit count", ErrInvalidTrigger, tb.Name, pb.Name)
		}
		t.Parameters = append(t.Parameters, &TriggerParam{
			Name:       pb.Name,
			Comment:    pb.Comment,
			ParamID:    pb.ParamID,
			DataBits:   uint32(pb.DataBits),
			OffsetBits: uint32(pb.OffsetBits),
			Visible:    pb.Visible,
		})
	}
	for _, cb := range tb.Conditions {
		val, diags := cb.RPN.Value(evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("trigger %q: failed to evaluate rpn: %w", tb.Name, diags)
		}
		rpn, err := decodeRPN(val)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %s condition: %w", ErrInvalidTrigger, tb.Name, cb.Action, err)
		}
		t.Conditions = append(t.Conditions, &Condition{
			Action:  cb.Action,
			Comment: cb.Comment,
			RPN:     rpn,
		})
	}
	return t, nil
}

// decodeRPN converts a list or tuple of primitives into RPN tokens.
func decodeRPN(val cty.Value) ([]string, error) {
	if val.IsNull() || !val.IsWhollyKnown() {
		return nil, errors.New("rpn must be a known list")
	}
	ty := val.Type()
	if !ty.IsListType() && !ty.IsTupleType() {
		return nil, fmt.Errorf("rpn must be a list, got %s", ty.FriendlyName())
	}
	list, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, fmt.Errorf("rpn elements must be strings or numbers: %w", err)
	}
	var out []string
	if err := gocty.FromCtyValue(list, &out); err != nil {
		return nil, err
	}
	return out, nil
}
