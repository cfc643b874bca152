package transaction

import (
	"strings"
	"unicode"
)

// Static fees of the standard kinds, in arktoshi.
const (
	FeeTransfer                = 10000000
	FeeSecondSignature         = 500000000
	FeeDelegateRegistration    = 2500000000
	FeeVote                    = 100000000
	FeeMultiSignature          = 500000000
	FeeIpfs                    = 500000000
	FeeMultiPayment            = 10000000
	FeeDelegateResignation     = 2500000000
	FeeHtlcLock                = 10000000
	FeeHtlcClaim               = 0
	FeeHtlcRefund              = 0
	FeeMagistrate              = 5000000000
	maxSupply           uint64 = 125_000_000 * 100_000_000
)

func amountField() Field {
	return Field{Name: "amount", Kind: KindInteger, Required: true, Rules: []Rule{Range(1, maxSupply)}}
}

func recipientField() Field {
	return Field{Name: "recipientId", Kind: KindString, Required: true, Rules: []Rule{Address()}}
}

func vendorField() Field {
	return Field{Name: "vendorField", Kind: KindString, Rules: []Rule{MaxLength(255)}}
}

func businessFields() []Field {
	return []Field{
		{Name: "name", Kind: KindString, Required: true, Rules: []Rule{MaxLength(40)}},
		{Name: "website", Kind: KindString, Required: true, Rules: []Rule{URL(), MaxLength(80)}},
		{Name: "vat", Kind: KindString, Rules: []Rule{VAT()}},
		{Name: "repository", Kind: KindString, Rules: []Rule{URL(), MaxLength(80)}},
	}
}

func seedNodesField(required bool) Field {
	return Field{
		Name:     "seedNodes",
		Kind:     KindStringList,
		Required: required,
		Rules:    []Rule{Items(1, 10), Unique(), Each(IP())},
	}
}

func bridgechainIDField() Field {
	return Field{Name: "bridgechainId", Kind: KindString, Required: true, Rules: []Rule{Hash()}}
}

func lockIDField() Field {
	return Field{Name: "lockTransactionId", Kind: KindString, Required: true, Rules: []Rule{Hash()}}
}

// newKind fills the derived descriptor metadata. Advanced fees may go from 1
// arktoshi up to the static fee; free kinds only accept 0.
func newKind(group Group, typ Type, name string, fee uint64, fields ...Field) Descriptor {
	var minimum uint64
	if fee > 0 {
		minimum = 1
	}
	return Descriptor{
		Key:        NewKey(group, typ),
		Name:       name,
		StaticFee:  fee,
		MinimumFee: minimum,
		MaximumFee: fee,
		Fields:     fields,
		Capability: "build" + pascal(name),
		ErrorKey:   "TRANSACTION.ERROR.VALIDATION." + strings.ToUpper(name),
	}
}

func pascal(name string) string {
	var b strings.Builder
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		r := []rune(part)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}

// StandardKinds returns the descriptors of the core and magistrate groups.
func StandardKinds() []Descriptor {
	return []Descriptor{
		newKind(GroupCore, TypeTransfer, "transfer", FeeTransfer,
			amountField(), recipientField(), vendorField()),
		newKind(GroupCore, TypeSecondSignature, "second_signature", FeeSecondSignature,
			Field{Name: "publicKey", Kind: KindString, Required: true, Rules: []Rule{PublicKey()}}),
		newKind(GroupCore, TypeDelegateRegistration, "delegate_registration", FeeDelegateRegistration,
			Field{Name: "username", Kind: KindString, Required: true, Rules: []Rule{Username()}}),
		newKind(GroupCore, TypeVote, "vote", FeeVote,
			Field{Name: "votes", Kind: KindStringList, Required: true, Rules: []Rule{Items(1, 2), Votes()}}),
		newKind(GroupCore, TypeMultiSignature, "multi_signature", FeeMultiSignature,
			Field{Name: "publicKeys", Kind: KindStringList, Required: true, Rules: []Rule{Items(2, 16), Unique(), Each(PublicKey())}},
			Field{Name: "min", Kind: KindInteger, Required: true, Default: uint64(2), Rules: []Rule{Range(1, 16)}}),
		newKind(GroupCore, TypeIpfs, "ipfs", FeeIpfs,
			Field{Name: "hash", Kind: KindString, Required: true, Rules: []Rule{IPFSHash()}}),
		newKind(GroupCore, TypeMultiPayment, "multi_payment", FeeMultiPayment,
			Field{Name: "payments", Kind: KindPayments, Required: true, Rules: []Rule{Items(2, 64), Payments()}},
			vendorField()),
		newKind(GroupCore, TypeDelegateResignation, "delegate_resignation", FeeDelegateResignation),
		newKind(GroupCore, TypeHtlcLock, "htlc_lock", FeeHtlcLock,
			amountField(), recipientField(),
			Field{Name: "secretHash", Kind: KindString, Required: true, Rules: []Rule{Hash()}},
			Field{Name: "expirationType", Kind: KindInteger, Required: true, Default: uint64(1), Rules: []Rule{Range(1, 2)}},
			Field{Name: "expirationValue", Kind: KindInteger, Required: true, Rules: []Rule{Range(1, 1<<32-1)}},
			vendorField()),
		newKind(GroupCore, TypeHtlcClaim, "htlc_claim", FeeHtlcClaim,
			lockIDField(),
			Field{Name: "unlockSecret", Kind: KindString, Required: true, Rules: []Rule{MaxLength(64)}}),
		newKind(GroupCore, TypeHtlcRefund, "htlc_refund", FeeHtlcRefund,
			lockIDField()),

		newKind(GroupMagistrate, TypeBusinessRegistration, "business_registration", FeeMagistrate,
			businessFields()...),
		newKind(GroupMagistrate, TypeBusinessResignation, "business_resignation", FeeMagistrate),
		newKind(GroupMagistrate, TypeBusinessUpdate, "business_update", FeeMagistrate,
			businessFields()...),
		newKind(GroupMagistrate, TypeBridgechainRegistration, "bridgechain_registration", FeeMagistrate,
			Field{Name: "name", Kind: KindString, Required: true, Rules: []Rule{MaxLength(40)}},
			seedNodesField(true),
			Field{Name: "genesisHash", Kind: KindString, Required: true, Rules: []Rule{Hash()}},
			Field{Name: "bridgechainRepository", Kind: KindString, Required: true, Rules: []Rule{URL(), MaxLength(80)}}),
		newKind(GroupMagistrate, TypeBridgechainResignation, "bridgechain_resignation", FeeMagistrate,
			bridgechainIDField()),
		newKind(GroupMagistrate, TypeBridgechainUpdate, "bridgechain_update", FeeMagistrate,
			bridgechainIDField(),
			seedNodesField(false),
			Field{Name: "bridgechainRepository", Kind: KindString, Rules: []Rule{URL(), MaxLength(80)}}),
	}
}

// NewDefaultRegistry returns an unsealed registry holding StandardKinds.
// Callers may register additional kinds before sealing it.
func NewDefaultRegistry() (*Registry, error) {
	r := NewRegistry()
	for _, d := range StandardKinds() {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}
