package settings

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	// ProtocolSSMK is the K-line SSM protocol.
	ProtocolSSMK = "ssmk"
	// ProtocolSSMCAN is the CAN SSM protocol.
	ProtocolSSMCAN = "ssmcan"

	// TriggerNone disables log triggers.
	TriggerNone = "none"

	DefaultProtocol = ProtocolSSMK
	DefaultTrigger  = "defogger"
)

var (
	ErrUnknownProtocol = errors.New("unknown protocol")
	ErrUnknownTrigger  = errors.New("unknown trigger")
	ErrInvalidTrigger  = errors.New("invalid trigger")
)

// Settings is the merged result of the built-in defaults and any settings
// files.
type Settings struct {
	Protocol string
	Trigger  string
	EcuID    string
	Triggers map[string]*Trigger
}

// Trigger is a named set of start/stop conditions, together with the extra
// parameter stanzas those conditions read.
type Trigger struct {
	Name string
	// Requires lists `id:unit` keys that must be logged for the conditions
	// to be evaluable.
	Requires   []string
	Parameters []*TriggerParam
	Conditions []*Condition
}

// TriggerParam is a raw parameter stanza emitted only for a trigger.
type TriggerParam struct {
	Name       string
	Comment    string
	ParamID    string
	DataBits   uint32
	OffsetBits uint32
	Visible    bool
}

// Condition starts or stops logging when its RPN expression holds.
type Condition struct {
	Action  string
	Comment string
	RPN     []string
}

// ConditionRPN returns the condition as a comma separated RPN string.
func (c *Condition) ConditionRPN() string {
	return strings.Join(c.RPN, ",")
}

// TriggerNames returns the names of all known triggers, sorted.
func (s *Settings) TriggerNames() []string {
	names := make([]string, 0, len(s.Triggers))
	for name := range s.Triggers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ActiveTrigger returns the selected trigger, or nil when triggers are
// disabled.
func (s *Settings) ActiveTrigger() (*Trigger, error) {
	if s.Trigger == TriggerNone {
		return nil, nil
	}
	t, ok := s.Triggers[s.Trigger]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s, %s)", ErrUnknownTrigger, s.Trigger, strings.Join(s.TriggerNames(), ", "), TriggerNone)
	}
	return t, nil
}

// Validate checks the protocol, the selected trigger and every trigger
// definition.
func (s *Settings) Validate() error {
	switch s.Protocol {
	case ProtocolSSMK, ProtocolSSMCAN:
	default:
		return fmt.Errorf("%w: %q (expected %s or %s)", ErrUnknownProtocol, s.Protocol, ProtocolSSMK, ProtocolSSMCAN)
	}

	var errs []error
	for _, name := range s.TriggerNames() {
		if err := s.Triggers[name].validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	_, err := s.ActiveTrigger()
	return err
}

func (t *Trigger) validate() error {
	if t.Name == TriggerNone {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidTrigger, TriggerNone)
	}
	for _, c := range t.Conditions {
		if c.Action != "start" && c.Action != "stop" {
			return fmt.Errorf("%w %q: condition action must be start or stop, got %q", ErrInvalidTrigger, t.Name, c.Action)
		}
		if len(c.RPN) == 0 {
			return fmt.Errorf("%w %q: %s condition has an empty rpn", ErrInvalidTrigger, t.Name, c.Action)
		}
	}
	for _, p := range t.Parameters {
		if p.ParamID == "" {
			return fmt.Errorf("%w %q: parameter %q has no paramid", ErrInvalidTrigger, t.Name, p.Name)
		}
	}
	return nil
}
