package catalog

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vk/genlogcfg/internal/ctxlog"
)

// definitionElements are the RomRaider element names that carry a parameter
// definition.
var definitionElements = map[string]struct{}{
	"parameter": {},
	"ecuparam":  {},
	"switch":    {},
}

type xmlAddress struct {
	Length string `xml:"length,attr"`
	Value  string `xml:",chardata"`
}

type xmlConversion struct {
	Units       string `xml:"units,attr"`
	Expr        string `xml:"expr,attr"`
	StorageType string `xml:"storagetype,attr"`
}

type xmlRef struct {
	Parameter string `xml:"parameter,attr"`
}

type xmlECU struct {
	ID      string      `xml:"id,attr"`
	Address *xmlAddress `xml:"address"`
}

type xmlDefinition struct {
	ID          string          `xml:"id,attr"`
	Name        string          `xml:"name,attr"`
	Address     *xmlAddress     `xml:"address"`
	Conversions []xmlConversion `xml:"conversions>conversion"`
	Depends     []xmlRef        `xml:"depends>ref"`
	ECUs        []xmlECU        `xml:"ecu"`
}

// LoadXML reads a RomRaider logger definitions document. Definitions may sit
// at any depth; when an id is defined twice the first one wins.
func LoadXML(ctx context.Context, r io.Reader) (*Memory, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("XML catalog loader started.")

	mem := NewMemory()
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read definitions: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if _, ok := definitionElements[se.Name.Local]; !ok || !hasAttr(se, "id") {
			continue
		}

		var raw xmlDefinition
		if err := dec.DecodeElement(&raw, &se); err != nil {
			return nil, fmt.Errorf("failed to decode <%s>: %w", se.Name.Local, err)
		}
		def, err := raw.translate()
		if err != nil {
			return nil, err
		}
		if !mem.Add(def) {
			logger.Debug("Duplicate definition ignored.", "id", def.ID)
		}
	}

	logger.Debug("XML catalog loading complete.", "definitions", mem.Len())
	return mem, nil
}

func hasAttr(se xml.StartElement, name string) bool {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return true
		}
	}
	return false
}

// translate converts the XML shape into the catalog model.
func (x *xmlDefinition) translate() (*Definition, error) {
	def := &Definition{ID: x.ID, Name: x.Name}

	addr, err := x.Address.translate()
	if err != nil {
		return nil, fmt.Errorf("parameter %s: %w", x.ID, err)
	}
	def.Address = addr

	for _, c := range x.Conversions {
		def.Conversions = append(def.Conversions, Conversion{
			Units:       c.Units,
			Expr:        c.Expr,
			StorageType: c.StorageType,
		})
	}
	for _, ref := range x.Depends {
		def.Depends = append(def.Depends, ref.Parameter)
	}
	for _, e := range x.ECUs {
		addr, err := e.Address.translate()
		if err != nil {
			return nil, fmt.Errorf("parameter %s, ecu %s: %w", x.ID, e.ID, err)
		}
		def.ECUs = append(def.ECUs, ECUVariant{ID: e.ID, Address: addr})
	}
	return def, nil
}

func (a *xmlAddress) translate() (*Address, error) {
	if a == nil {
		return nil, nil
	}
	out := &Address{Value: strings.TrimSpace(a.Value)}
	if a.Length != "" {
		n, err := strconv.ParseUint(strings.TrimSpace(a.Length), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid address length %q: %w", a.Length, err)
		}
		out.Length = uint32(n)
	}
	return out, nil
}
