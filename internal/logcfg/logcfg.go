// Package logcfg writes Tactrix OpenPort logcfg.txt files.
package logcfg

import (
	"fmt"
	"io"

	"github.com/vk/genlogcfg/internal/param"
	"github.com/vk/genlogcfg/internal/settings"
)

const (
	generalHeader    = "; --- General ------------------------------------------------"
	parametersHeader = "; --- Parameters ---------------------------------------------"
	triggersHeader   = "; --- Triggers -----------------------------------------------"
)

// Document is everything that goes into one logcfg file.
type Document struct {
	Protocol string
	// Parameters must already be in dependency order.
	Parameters []*param.Parameter
	// Trigger is nil when logging is not triggered.
	Trigger *settings.Trigger
}

// errWriter remembers the first write error so stanzas can be written
// without checking every line.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) line(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format+"\n", args...)
}

func (ew *errWriter) blank() {
	ew.line("")
}

// Write serializes doc to w using LF line endings.
func Write(w io.Writer, doc Document) error {
	ew := &errWriter{w: w}

	ew.line(";")
	ew.line("; Generated by genlogcfg")
	ew.line(";")

	ew.line(generalHeader)
	ew.line("type = %s", doc.Protocol)
	ew.blank()

	ew.line(parametersHeader)
	for _, p := range doc.Parameters {
		if err := writeParameter(ew, p); err != nil {
			return err
		}
	}
	if doc.Trigger != nil {
		for _, tp := range doc.Trigger.Parameters {
			writeTriggerParam(ew, tp)
		}
	}

	ew.line(triggersHeader)
	if doc.Trigger != nil {
		for _, c := range doc.Trigger.Conditions {
			if c.Comment != "" {
				ew.line("; %s", c.Comment)
			}
			ew.line("conditionrpn = %s", c.ConditionRPN())
			ew.line("action = %s", c.Action)
			ew.blank()
		}
	}
	return ew.err
}

// writeParameter writes the comment line and stanza of one resolved
// parameter. Address-dependent keys are omitted for calculated parameters.
func writeParameter(ew *errWriter, p *param.Parameter) error {
	ew.line("; %s - %s (%s)", p.ID, p.Name, p.Units)
	ew.line("paramname = %s", p.CSVFieldName())

	if p.Address != "" {
		ew.line("paramid = %s", p.Address)
		if p.DataBits > 0 {
			ew.line("databits = %d", p.DataBits)
		}
		if p.Kind() == param.Extended && p.IsFloat {
			ew.line("isfloat = 1")
		}
		if p.Expression != nil {
			rpn, err := p.Expression.RPN()
			if err != nil {
				return fmt.Errorf("parameter %s: %w", p.Key(), err)
			}
			ew.line("scalingrpn = %s", rpn)
		}
		if p.Hidden {
			ew.line("isvisible = 0")
		}
	}
	ew.blank()
	return ew.err
}

func writeTriggerParam(ew *errWriter, tp *settings.TriggerParam) {
	if tp.Comment != "" {
		ew.line("; %s", tp.Comment)
	}
	ew.line("paramname = %s", tp.Name)
	ew.line("paramid = %s", tp.ParamID)
	if tp.DataBits > 0 {
		ew.line("databits = %d", tp.DataBits)
	}
	if tp.OffsetBits > 0 {
		ew.line("offsetbits = %d", tp.OffsetBits)
	}
	if !tp.Visible {
		ew.line("isvisible = 0")
	}
	ew.blank()
}
