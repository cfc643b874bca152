package transaction

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

// Payload is what a build capability receives: the computed fee and the
// normalized asset. It never carries secrets.
type Payload struct {
	Fee   uint64 `json:"fee"`
	Asset Asset  `json:"asset"`
}

// Signable is the built, unsigned transaction handed to the signer.
type Signable struct {
	Key   Key             `json:"key"`
	Name  string          `json:"name"`
	Fee   uint64          `json:"fee"`
	Asset Asset           `json:"asset"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Builder is an external build capability.
type Builder interface {
	Build(ctx context.Context, key Key, payload Payload, isAdvancedFee, returnObject bool) (*Signable, error)
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func(ctx context.Context, key Key, payload Payload, isAdvancedFee, returnObject bool) (*Signable, error)

func (f BuilderFunc) Build(ctx context.Context, key Key, payload Payload, isAdvancedFee, returnObject bool) (*Signable, error) {
	return f(ctx, key, payload, isAdvancedFee, returnObject)
}

// Translator resolves a translation key to user-facing text.
type Translator interface {
	Translate(key string) string
}

type identityTranslator struct{}

func (identityTranslator) Translate(key string) string { return key }

// Bindings maps capability names to builders.
type Bindings map[string]Builder

// Bind registers b under capability, replacing any earlier binding.
func (b Bindings) Bind(capability string, builder Builder) Bindings {
	b[capability] = builder
	return b
}

// BindAll binds builder to the capability of every descriptor.
func (b Bindings) BindAll(builder Builder, kinds ...Descriptor) Bindings {
	for _, d := range kinds {
		b[d.Capability] = builder
	}
	return b
}

// Resolve returns the builder bound to the descriptor's capability.
func (b Bindings) Resolve(d Descriptor) (Builder, error) {
	builder, ok := b[d.Capability]
	if !ok || builder == nil {
		return nil, fmt.Errorf("%w: %s for %s", ErrCapabilityNotBound, d.Capability, d.Name)
	}
	return builder, nil
}

// Unbound lists the names of kinds whose capability has no builder, sorted.
func (b Bindings) Unbound(kinds []Descriptor) []string {
	var missing []string
	for _, d := range kinds {
		if _, err := b.Resolve(d); err != nil {
			missing = append(missing, d.Name)
		}
	}
	sort.Strings(missing)
	return missing
}
