package catalog

import "strings"

// Address is a hardware address with an optional byte length.
type Address struct {
	Value  string `yaml:"value"`
	Length uint32 `yaml:"length,omitempty"`
}

// Bits returns the address width in bits, 0 when no length is known.
func (a *Address) Bits() uint32 {
	if a == nil {
		return 0
	}
	return a.Length * 8
}

// Conversion is one unit-specific scaling formula.
type Conversion struct {
	Units       string `yaml:"units"`
	Expr        string `yaml:"expr"`
	StorageType string `yaml:"storagetype,omitempty"`
}

// IsFloat reports whether the raw value is stored as a float.
func (c Conversion) IsFloat() bool {
	return c.StorageType == "float"
}

// ECUVariant is the ECU-specific part of an extended parameter. ID may list
// several ECU ids, RomRaider separates them with commas.
type ECUVariant struct {
	ID      string   `yaml:"id"`
	Address *Address `yaml:"address,omitempty"`
}

// Matches reports whether the variant applies to ecuID.
func (v ECUVariant) Matches(ecuID string) bool {
	return strings.Contains(v.ID, ecuID)
}

// Definition is everything the catalog knows about one parameter id.
type Definition struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name,omitempty"`
	Address     *Address     `yaml:"address,omitempty"`
	Conversions []Conversion `yaml:"conversions,omitempty"`
	Depends     []string     `yaml:"depends,omitempty"`
	ECUs        []ECUVariant `yaml:"ecus,omitempty"`
}

// Conversion returns the conversion for units.
func (d *Definition) Conversion(units string) (Conversion, bool) {
	for _, c := range d.Conversions {
		if c.Units == units {
			return c, true
		}
	}
	return Conversion{}, false
}

// ECU returns the first variant matching ecuID.
func (d *Definition) ECU(ecuID string) (*ECUVariant, bool) {
	for i := range d.ECUs {
		if d.ECUs[i].Matches(ecuID) {
			return &d.ECUs[i], true
		}
	}
	return nil, false
}

// DisplayName is the catalog name, or the id when the catalog has none.
func (d *Definition) DisplayName() string {
	if d.Name == "" {
		return d.ID
	}
	return d.Name
}
