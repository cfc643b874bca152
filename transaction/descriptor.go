package transaction

import (
	"fmt"
	"slices"

	"github.com/AlexZinkM/wallet-txcore/currency"
)

// FieldKind is the value shape of an asset field.
type FieldKind int

const (
	KindString FieldKind = iota
	KindInteger
	KindStringList
	KindPayments
)

func (k FieldKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindStringList:
		return "string_list"
	case KindPayments:
		return "payments"
	default:
		return "unknown"
	}
}

// Field describes one asset field of a kind.
type Field struct {
	Name     string
	Kind     FieldKind
	Required bool
	Default  any
	Rules    []Rule
}

// Descriptor is the static metadata of one transaction kind.
type Descriptor struct {
	Key  Key
	Name string

	// Decimals of the fee unit; 0 means currency.CryptoPrecision.
	Decimals int32

	// Fees in the network's smallest unit.
	StaticFee  uint64
	MinimumFee uint64
	MaximumFee uint64

	Fields []Field

	// Capability selects the Builder used for this kind.
	Capability string
	// ErrorKey is the translation key of the generic error shown when building fails.
	ErrorKey string
}

// Field returns the field named name.
func (d Descriptor) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Defaults returns a fresh copy of the default payload template.
func (d Descriptor) Defaults() Asset {
	asset := make(Asset, len(d.Fields))
	for _, f := range d.Fields {
		asset[f.Name] = zeroValue(f)
	}
	return asset
}

// FeeDecimals returns the number of decimals of the fee unit.
func (d Descriptor) FeeDecimals() int32 {
	if d.Decimals > 0 {
		return d.Decimals
	}
	return currency.CryptoPrecision
}

func zeroValue(f Field) any {
	if f.Default != nil {
		return cloneValue(f.Default)
	}
	switch f.Kind {
	case KindInteger:
		return uint64(0)
	case KindStringList:
		return []string{}
	case KindPayments:
		return []Payment{}
	default:
		return ""
	}
}

func (d Descriptor) check() error {
	if d.Name == "" {
		return fmt.Errorf("%w: %s has no name", ErrInvalidDescriptor, d.Key)
	}
	if d.Capability == "" {
		return fmt.Errorf("%w: %s has no capability", ErrInvalidDescriptor, d.Name)
	}
	if d.MinimumFee > d.MaximumFee {
		return fmt.Errorf("%w: %s minimum fee %d above maximum %d", ErrInvalidDescriptor, d.Name, d.MinimumFee, d.MaximumFee)
	}

	seen := make(map[string]bool, len(d.Fields))
	for _, f := range d.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: %s has an unnamed field", ErrInvalidDescriptor, d.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: %s declares %q twice", ErrInvalidDescriptor, d.Name, f.Name)
		}
		seen[f.Name] = true

		if f.Default != nil {
			if _, ok := coerce(f.Kind, f.Default); !ok {
				return fmt.Errorf("%w: %s default of %q is not a %s", ErrInvalidDescriptor, d.Name, f.Name, f.Kind)
			}
		}
	}
	return nil
}

func (d Descriptor) clone() Descriptor {
	c := d
	c.Fields = slices.Clone(d.Fields)
	for i := range c.Fields {
		c.Fields[i].Rules = slices.Clone(d.Fields[i].Rules)
		c.Fields[i].Default = cloneValue(d.Fields[i].Default)
	}
	return c
}
