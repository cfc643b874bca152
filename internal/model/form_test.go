package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestDraftRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     DraftRequest
		wantErr bool
	}{
		{"empty", DraftRequest{}, false},
		{"fixed", DraftRequest{FeeMode: "fixed"}, false},
		{"advanced fee", DraftRequest{FeeMode: "ADVANCED", Fee: strPtr("0.05")}, false},
		{"advanced fiat", DraftRequest{FeeMode: "ADVANCED", FiatFee: strPtr("0.01")}, false},
		{"unknown mode", DraftRequest{FeeMode: "CHEAP"}, true},
		{"fiat without advanced", DraftRequest{FiatFee: strPtr("0.01")}, true},
		{"fiat not a number", DraftRequest{FeeMode: "ADVANCED", FiatFee: strPtr("ten")}, true},
		{"negative fiat", DraftRequest{FeeMode: "ADVANCED", FiatFee: strPtr("-1")}, true},
		{"fee and fiat", DraftRequest{FeeMode: "ADVANCED", Fee: strPtr("1"), FiatFee: strPtr("1")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
