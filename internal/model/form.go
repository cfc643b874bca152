package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// KindResponse describes a registered transaction kind
type KindResponse struct {
	Name       string         `json:"name"`
	Type       uint16         `json:"type"`
	TypeGroup  uint16         `json:"typeGroup"`
	StaticFee  string         `json:"staticFee"`
	MinimumFee string         `json:"minimumFee"`
	MaximumFee string         `json:"maximumFee"`
	Fields     []FieldInfo    `json:"fields"`
	Defaults   map[string]any `json:"defaults"`
}

// FieldInfo describes one asset field of a kind
type FieldInfo struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Required bool   `json:"required"`
}

// CreateFormRequest represents request for POST /forms
type CreateFormRequest struct {
	Type      uint16         `json:"type"`
	TypeGroup uint16         `json:"typeGroup"`
	Prefill   map[string]any `json:"prefill,omitempty"`
}

// DraftRequest represents request for PUT /forms/{id}/draft.
// Fees are decimal strings in the network coin; FiatFee is in the display currency.
type DraftRequest struct {
	FeeMode          string         `json:"feeMode,omitempty"`
	Fee              *string        `json:"fee,omitempty"`
	FiatFee          *string        `json:"fiatFee,omitempty"`
	Passphrase       string         `json:"passphrase,omitempty"`
	SecondPassphrase string         `json:"secondPassphrase,omitempty"`
	WalletPassword   string         `json:"walletPassword,omitempty"`
	Asset            map[string]any `json:"asset,omitempty"`
}

// Validate validates DraftRequest fee parameters.
func (r *DraftRequest) Validate() error {
	mode := strings.ToUpper(strings.TrimSpace(r.FeeMode))
	if mode != "" && mode != "FIXED" && mode != "ADVANCED" {
		return fmt.Errorf("feeMode must be FIXED or ADVANCED")
	}
	if r.FiatFee != nil {
		if mode != "ADVANCED" {
			return fmt.Errorf("fiatFee requires feeMode ADVANCED")
		}
		fiat, err := decimal.NewFromString(*r.FiatFee)
		if err != nil {
			return fmt.Errorf("fiatFee must be a decimal number")
		}
		if fiat.IsNegative() {
			return fmt.Errorf("fiatFee must not be negative")
		}
	}
	if r.Fee != nil && r.FiatFee != nil {
		return fmt.Errorf("fee and fiatFee are mutually exclusive")
	}
	return nil
}

// FieldErrorResponse is a field error with its localized message
type FieldErrorResponse struct {
	Field   string `json:"field"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// FormResponse represents a form, without its secrets
type FormResponse struct {
	ID            string               `json:"id"`
	Kind          string               `json:"kind"`
	Type          uint16               `json:"type"`
	TypeGroup     uint16               `json:"typeGroup"`
	State         string               `json:"state"`
	FeeMode       string               `json:"feeMode"`
	Fee           string               `json:"fee"`
	FiatFee       string               `json:"fiatFee,omitempty"`
	MinimumFee    string               `json:"minimumFee"`
	MaximumFee    string               `json:"maximumFee"`
	HasPassphrase bool                 `json:"hasPassphrase"`
	Asset         map[string]any       `json:"asset"`
	Errors        []FieldErrorResponse `json:"errors,omitempty"`
}

// SubmitResponse represents response for POST /forms/{id}/submit
type SubmitResponse struct {
	ID          string               `json:"id"`
	State       string               `json:"state"`
	Transaction *SignableResponse    `json:"transaction,omitempty"`
	Errors      []FieldErrorResponse `json:"errors,omitempty"`
}

// SignableResponse is the built, unsigned transaction
type SignableResponse struct {
	Kind      string         `json:"kind"`
	Type      uint16         `json:"type"`
	TypeGroup uint16         `json:"typeGroup"`
	Fee       string         `json:"fee"`
	Asset     map[string]any `json:"asset"`
	Data      any            `json:"data,omitempty"`
}
