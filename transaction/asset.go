package transaction

import (
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Asset holds the kind-specific fields of a draft. Values are normalized by
// field kind: string, uint64, []string or []Payment.
type Asset map[string]any

// Payment is one entry of a multi-payment.
type Payment struct {
	RecipientID string `json:"recipientId" validate:"required,len=34,base58"`
	Amount      uint64 `json:"amount" validate:"gt=0"`
}

// Clone returns a deep copy.
func (a Asset) Clone() Asset {
	if a == nil {
		return nil
	}
	c := make(Asset, len(a))
	for k, v := range a {
		c[k] = cloneValue(v)
	}
	return c
}

// String returns the string field name, or "" when absent or not a string.
func (a Asset) String(name string) string {
	s, _ := a[name].(string)
	return s
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case []string:
		return slices.Clone(x)
	case []Payment:
		return slices.Clone(x)
	case []any:
		return slices.Clone(x)
	default:
		return v
	}
}

// coerce converts a raw value, such as one decoded from JSON, into the
// normalized type of kind.
func coerce(kind FieldKind, v any) (any, bool) {
	switch kind {
	case KindString:
		s, ok := v.(string)
		return s, ok
	case KindInteger:
		return toUint(v)
	case KindStringList:
		return toStrings(v)
	case KindPayments:
		return toPayments(v)
	}
	return nil, false
}

func toUint(v any) (uint64, bool) {
	switch x := v.(type) {
	case uint64:
		return x, true
	case uint:
		return uint64(x), true
	case uint32:
		return uint64(x), true
	case int:
		return uint64(x), x >= 0
	case int64:
		return uint64(x), x >= 0
	case int32:
		return uint64(x), x >= 0
	case float64:
		if x < 0 || x != math.Trunc(x) || x > math.MaxUint64 {
			return 0, false
		}
		return uint64(x), true
	case json.Number:
		n, err := strconv.ParseUint(x.String(), 10, 64)
		return n, err == nil
	case string:
		n, err := strconv.ParseUint(strings.TrimSpace(x), 10, 64)
		return n, err == nil
	}
	return 0, false
}

func toStrings(v any) ([]string, bool) {
	switch x := v.(type) {
	case []string:
		return slices.Clone(x), true
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	case nil:
		return []string{}, true
	}
	return nil, false
}

func toPayments(v any) ([]Payment, bool) {
	switch x := v.(type) {
	case []Payment:
		return slices.Clone(x), true
	case []any:
		out := make([]Payment, 0, len(x))
		for _, item := range x {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, false
			}
			recipient, ok := m["recipientId"].(string)
			if !ok {
				return nil, false
			}
			amount, ok := toUint(m["amount"])
			if !ok {
				return nil, false
			}
			out = append(out, Payment{RecipientID: recipient, Amount: amount})
		}
		return out, true
	case nil:
		return []Payment{}, true
	}
	return nil, false
}

// isEmpty reports whether a normalized value counts as not provided.
func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case []string:
		return len(x) == 0
	case []Payment:
		return len(x) == 0
	}
	return false
}
