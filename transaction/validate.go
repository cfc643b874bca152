package transaction

import "sort"

// Validate normalizes raw against the descriptor's fields and checks every
// rule. At most one error is reported per field, in field order, followed by
// unknown fields in name order. With no errors the normalized asset is
// returned; fields missing from raw take their default value. A required
// integer left at zero counts as missing.
func Validate(d Descriptor, raw Asset) (Asset, FieldErrors) {
	var (
		errs    FieldErrors
		unknown []string
	)

	for name := range raw {
		if _, ok := d.Field(name); !ok {
			unknown = append(unknown, name)
		}
	}

	asset := make(Asset, len(d.Fields))
	for _, f := range d.Fields {
		v, present := raw[f.Name]
		if !present || v == nil {
			v = zeroValue(f)
		}

		normalized, ok := coerce(f.Kind, v)
		if !ok {
			errs = append(errs, FieldError{Field: f.Name, Reason: ReasonInvalidType})
			continue
		}
		asset[f.Name] = normalized

		if isEmpty(normalized) || (f.Required && isUnset(f, normalized)) {
			if f.Required {
				errs = append(errs, FieldError{Field: f.Name, Reason: ReasonRequired})
			}
			continue
		}

		for _, rule := range f.Rules {
			if reason := rule(normalized); reason != "" {
				errs = append(errs, FieldError{Field: f.Name, Reason: reason})
				break
			}
		}
	}

	sort.Strings(unknown)
	for _, name := range unknown {
		errs = append(errs, FieldError{Field: name, Reason: ReasonUnknownField})
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return asset, nil
}

// isUnset reports whether a required integer still holds its zero seed and
// so was never entered.
func isUnset(f Field, v any) bool {
	return f.Kind == KindInteger && f.Default == nil && v == uint64(0)
}
