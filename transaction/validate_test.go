package transaction

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAddress   = "AXzxJ8Ts3dQ2bvBR1tPE7GUee9iSEJb8HX"
	testPublicKey = "03287bfebba4c7881a0509717e71b34b63f31e40021c321f89ae04f84be6d6ac37"
	testHash      = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
)

func defaultKind(t *testing.T, g Group, typ Type) Descriptor {
	t.Helper()
	reg, err := NewDefaultRegistry()
	require.NoError(t, err)
	return reg.MustLookup(g, typ)
}

func TestValidate_BusinessUpdate(t *testing.T) {
	t.Parallel()

	d := defaultKind(t, GroupMagistrate, TypeBusinessUpdate)

	tests := []struct {
		name  string
		asset Asset
		want  FieldErrors
	}{
		{
			name:  "valid",
			asset: Asset{"name": "Acme", "website": "https://acme.example"},
		},
		{
			name:  "optional fields set",
			asset: Asset{"name": "Acme", "website": "https://acme.example", "vat": "GB12345678", "repository": "https://github.com/acme/core"},
		},
		{
			name:  "empty name",
			asset: Asset{"name": "", "website": "https://acme.example"},
			want:  FieldErrors{{Field: "name", Reason: ReasonRequired}},
		},
		{
			name:  "long name",
			asset: Asset{"name": strings.Repeat("a", 41), "website": "https://acme.example"},
			want:  FieldErrors{{Field: "name", Reason: ReasonTooLong}},
		},
		{
			name:  "bad website and vat",
			asset: Asset{"name": "Acme", "website": "acme", "vat": "12"},
			want: FieldErrors{
				{Field: "website", Reason: ReasonInvalidURL},
				{Field: "vat", Reason: ReasonInvalidVAT},
			},
		},
		{
			name:  "unknown fields after known ones",
			asset: Asset{"zeta": 1, "alpha": "x", "website": "https://acme.example"},
			want: FieldErrors{
				{Field: "name", Reason: ReasonRequired},
				{Field: "alpha", Reason: ReasonUnknownField},
				{Field: "zeta", Reason: ReasonUnknownField},
			},
		},
		{
			name:  "wrong type",
			asset: Asset{"name": 12, "website": "https://acme.example"},
			want:  FieldErrors{{Field: "name", Reason: ReasonInvalidType}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset, errs := Validate(d, tt.asset)
			if tt.want == nil {
				require.Nil(t, errs)
				assert.Equal(t, tt.asset["name"], asset["name"])
				assert.Contains(t, asset, "vat", "missing optional fields take defaults")
				return
			}
			assert.Nil(t, asset)
			assert.Equal(t, tt.want, errs)
		})
	}
}

func TestValidate_NormalizesJSON(t *testing.T) {
	t.Parallel()

	d := defaultKind(t, GroupCore, TypeMultiPayment)

	var raw Asset
	require.NoError(t, json.Unmarshal([]byte(`{
		"payments": [
			{"recipientId": "`+testAddress+`", "amount": 100000000},
			{"recipientId": "`+testAddress+`", "amount": "25"}
		]
	}`), &raw))

	asset, errs := Validate(d, raw)
	require.Nil(t, errs)
	assert.Equal(t, []Payment{
		{RecipientID: testAddress, Amount: 100000000},
		{RecipientID: testAddress, Amount: 25},
	}, asset["payments"])
	assert.Equal(t, "", asset["vendorField"])
}

func TestValidate_CoreKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		key   Key
		asset Asset
		want  FieldErrors
	}{
		{"transfer", NewKey(GroupCore, TypeTransfer), Asset{"amount": 1.0, "recipientId": testAddress}, nil},
		{"transfer without amount", NewKey(GroupCore, TypeTransfer), Asset{"recipientId": testAddress},
			FieldErrors{{Field: "amount", Reason: ReasonRequired}}},
		{"transfer with nil amount", NewKey(GroupCore, TypeTransfer), Asset{"recipientId": testAddress, "amount": nil},
			FieldErrors{{Field: "amount", Reason: ReasonRequired}}},
		{"transfer zero amount", NewKey(GroupCore, TypeTransfer), Asset{"recipientId": testAddress, "amount": json.Number("0")},
			FieldErrors{{Field: "amount", Reason: ReasonRequired}}},
		{"transfer above supply", NewKey(GroupCore, TypeTransfer), Asset{"recipientId": testAddress, "amount": json.Number("12500000000000001")},
			FieldErrors{{Field: "amount", Reason: ReasonOutOfRange}}},
		{"multi signature default min", NewKey(GroupCore, TypeMultiSignature), Asset{"publicKeys": []string{testPublicKey, "02" + testPublicKey[2:]}}, nil},
		{"transfer fractional amount", NewKey(GroupCore, TypeTransfer), Asset{"amount": 1.5, "recipientId": testAddress},
			FieldErrors{{Field: "amount", Reason: ReasonInvalidType}}},
		{"transfer bad address", NewKey(GroupCore, TypeTransfer), Asset{"amount": 1, "recipientId": "0OIl"},
			FieldErrors{{Field: "recipientId", Reason: ReasonInvalidAddress}}},
		{"vote", NewKey(GroupCore, TypeVote), Asset{"votes": []any{"+" + testPublicKey}}, nil},
		{"vote twice for same delegate", NewKey(GroupCore, TypeVote), Asset{"votes": []string{"-" + testPublicKey, "+" + testPublicKey}},
			FieldErrors{{Field: "votes", Reason: ReasonDuplicate}}},
		{"vote without sign", NewKey(GroupCore, TypeVote), Asset{"votes": []string{testPublicKey}},
			FieldErrors{{Field: "votes", Reason: ReasonInvalidVote}}},
		{"delegate username", NewKey(GroupCore, TypeDelegateRegistration), Asset{"username": "Upper"},
			FieldErrors{{Field: "username", Reason: ReasonInvalidUsername}}},
		{"multi signature too few keys", NewKey(GroupCore, TypeMultiSignature), Asset{"publicKeys": []string{testPublicKey}},
			FieldErrors{{Field: "publicKeys", Reason: ReasonTooFew}}},
		{"ipfs", NewKey(GroupCore, TypeIpfs), Asset{"hash": "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"}, nil},
		{"htlc refund", NewKey(GroupCore, TypeHtlcRefund), Asset{"lockTransactionId": testHash}, nil},
		{"delegate resignation has no fields", NewKey(GroupCore, TypeDelegateResignation), Asset{}, nil},
		{"bridgechain seed nodes", NewKey(GroupMagistrate, TypeBridgechainRegistration), Asset{
			"name": "chain", "seedNodes": []string{"1.2.3.4", "nope"}, "genesisHash": testHash, "bridgechainRepository": "https://example.com/repo",
		}, FieldErrors{{Field: "seedNodes", Reason: ReasonInvalidIP}}},
	}

	reg, err := NewDefaultRegistry()
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := reg.MustLookup(tt.key.Group, tt.key.Type)
			_, errs := Validate(d, tt.asset)
			assert.Equal(t, tt.want, errs)
		})
	}
}

func TestDescriptor_DefaultsAreFresh(t *testing.T) {
	t.Parallel()

	d := defaultKind(t, GroupCore, TypeMultiSignature)

	a := d.Defaults()
	assert.Equal(t, uint64(2), a["min"])
	a["publicKeys"] = append(a["publicKeys"].([]string), testPublicKey)

	b := d.Defaults()
	assert.Empty(t, b["publicKeys"])
}
