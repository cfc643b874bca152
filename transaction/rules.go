package transaction

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Rule checks a normalized, non-empty field value and returns the violated
// reason, or "" when the value is acceptable.
type Rule func(value any) string

// Chain-specific formats the stock validator tags do not cover.
var customTags = map[string]*regexp.Regexp{
	"base58":       regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]+$`),
	"ark_vote":     regexp.MustCompile(`^[+-]0[23][0-9a-fA-F]{64}$`),
	"ark_username": regexp.MustCompile(`^[a-z0-9!@$&_.]{1,20}$`),
}

const (
	addressTag   = "len=34,base58"
	publicKeyTag = "len=66,hexadecimal,excludesall=xX,startswith=02|startswith=03"
	hashTag      = "len=64,hexadecimal,excludesall=xX"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	for tag, re := range customTags {
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("failed to register %q validation: %v", tag, err))
		}
	}
	return v
}

// tagReasons maps a failing validator tag to a field error reason.
type tagReasons map[string]string

// varRule checks values accepted by is against a validator tag.
func varRule(tag string, is func(any) bool, fallback string, reasons tagReasons) Rule {
	return func(v any) string {
		if !is(v) {
			return ReasonInvalidType
		}
		return reasonOf(validate.Var(v, tag), fallback, reasons)
	}
}

func reasonOf(err error, fallback string, reasons tagReasons) string {
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if reason, ok := reasons[verrs[0].Tag()]; ok {
			return reason
		}
	}
	return fallback
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func isUint(v any) bool {
	_, ok := v.(uint64)
	return ok
}

func isList(v any) bool {
	switch v.(type) {
	case []string, []Payment:
		return true
	}
	return false
}

func isStrings(v any) bool {
	_, ok := v.([]string)
	return ok
}

// MaxLength limits a string to n characters.
func MaxLength(n int) Rule {
	return varRule("max="+strconv.Itoa(n), isString, ReasonTooLong, nil)
}

// MinLength requires at least n characters.
func MinLength(n int) Rule {
	return varRule("min="+strconv.Itoa(n), isString, ReasonTooShort, nil)
}

// URL accepts absolute http and https URLs.
func URL() Rule { return varRule("http_url", isString, ReasonInvalidURL, nil) }

// VAT accepts 8 to 15 alphanumeric characters.
func VAT() Rule { return varRule("alphanum,min=8,max=15", isString, ReasonInvalidVAT, nil) }

// Address accepts a base58 wallet address.
func Address() Rule { return varRule(addressTag, isString, ReasonInvalidAddress, nil) }

// PublicKey accepts a compressed secp256k1 public key in hex.
func PublicKey() Rule { return varRule(publicKeyTag, isString, ReasonInvalidPublicKey, nil) }

// Username accepts a delegate username.
func Username() Rule { return varRule("ark_username", isString, ReasonInvalidUsername, nil) }

// Hash accepts a 32-byte hex digest.
func Hash() Rule { return varRule(hashTag, isString, ReasonInvalidHash, nil) }

// IPFSHash accepts a base58 CIDv0.
func IPFSHash() Rule {
	return varRule("len=46,startswith=Qm,base58", isString, ReasonInvalidHash, nil)
}

// IP accepts an IPv4 or IPv6 literal.
func IP() Rule { return varRule("ip", isString, ReasonInvalidIP, nil) }

// Range bounds an integer field.
func Range(lo, hi uint64) Rule {
	tag := fmt.Sprintf("min=%d,max=%d", lo, hi)
	return varRule(tag, isUint, ReasonOutOfRange, nil)
}

// Items bounds the length of a list field.
func Items(lo, hi int) Rule {
	tag := fmt.Sprintf("min=%d,max=%d", lo, hi)
	return varRule(tag, isList, ReasonInvalidType, tagReasons{"min": ReasonTooFew, "max": ReasonTooMany})
}

// Unique rejects repeated entries in a string list.
func Unique() Rule { return varRule("unique", isStrings, ReasonDuplicate, nil) }

// Each applies rule to every entry of a string list.
func Each(rule Rule) Rule {
	return func(v any) string {
		items, ok := v.([]string)
		if !ok {
			return ReasonInvalidType
		}
		for _, s := range items {
			if reason := rule(s); reason != "" {
				return reason
			}
		}
		return ""
	}
}

// Votes accepts "+" or "-" prefixed delegate public keys, one vote per delegate.
func Votes() Rule {
	return func(v any) string {
		items, ok := v.([]string)
		if !ok {
			return ReasonInvalidType
		}
		if err := validate.Var(items, "dive,ark_vote"); err != nil {
			return ReasonInvalidVote
		}
		seen := make(map[string]struct{}, len(items))
		for _, s := range items {
			if _, dup := seen[s[1:]]; dup {
				return ReasonDuplicate
			}
			seen[s[1:]] = struct{}{}
		}
		return ""
	}
}

// Payments checks every entry against the Payment field tags.
func Payments() Rule {
	return func(v any) string {
		items, ok := v.([]Payment)
		if !ok {
			return ReasonInvalidType
		}
		for _, p := range items {
			err := validate.Struct(p)
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) || len(verrs) == 0 {
				if err != nil {
					return ReasonInvalidType
				}
				continue
			}
			if verrs[0].StructField() == "Amount" {
				return ReasonOutOfRange
			}
			return ReasonInvalidAddress
		}
		return ""
	}
}
