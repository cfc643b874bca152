// Package transaction builds signable transactions from user drafts.
//
// Every transaction kind is described by a Descriptor registered once in a
// Registry. A single Workflow drives validation, fee computation and the call
// to the kind's build capability; kinds differ only in their descriptor data
// and the Builder bound to their capability name.
package transaction

import (
	"fmt"
	"strings"
)

// Group is the transaction type group of a network.
type Group uint16

const (
	GroupCore       Group = 1
	GroupMagistrate Group = 2
)

// Type identifies a kind inside its group.
type Type uint16

// Core group types.
const (
	TypeTransfer             Type = 0
	TypeSecondSignature      Type = 1
	TypeDelegateRegistration Type = 2
	TypeVote                 Type = 3
	TypeMultiSignature       Type = 4
	TypeIpfs                 Type = 5
	TypeMultiPayment         Type = 6
	TypeDelegateResignation  Type = 7
	TypeHtlcLock             Type = 8
	TypeHtlcClaim            Type = 9
	TypeHtlcRefund           Type = 10
)

// Magistrate group types.
const (
	TypeBusinessRegistration    Type = 0
	TypeBusinessResignation     Type = 1
	TypeBusinessUpdate          Type = 2
	TypeBridgechainRegistration Type = 3
	TypeBridgechainResignation  Type = 4
	TypeBridgechainUpdate       Type = 5
)

// Key identifies a transaction kind.
type Key struct {
	Group Group `json:"typeGroup"`
	Type  Type  `json:"type"`
}

// NewKey is shorthand for Key{Group: g, Type: t}.
func NewKey(g Group, t Type) Key {
	return Key{Group: g, Type: t}
}

func (k Key) String() string {
	return fmt.Sprintf("%d/%d", k.Group, k.Type)
}

// Less orders keys by group, then type.
func (k Key) Less(other Key) bool {
	if k.Group != other.Group {
		return k.Group < other.Group
	}
	return k.Type < other.Type
}

// FeeMode selects how the fee of a draft is obtained.
type FeeMode string

const (
	// FeeModeFixed uses the network's static fee for the kind.
	FeeModeFixed FeeMode = "FIXED"
	// FeeModeAdvanced uses a user-chosen fee within the kind's bounds.
	FeeModeAdvanced FeeMode = "ADVANCED"
)

// ParseFeeMode accepts the mode names case-insensitively. Empty means FIXED.
func ParseFeeMode(s string) (FeeMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(FeeModeFixed):
		return FeeModeFixed, nil
	case string(FeeModeAdvanced):
		return FeeModeAdvanced, nil
	}
	return "", fmt.Errorf("unknown fee mode %q", s)
}

// IsAdvanced reports whether the mode is ADVANCED.
func (m FeeMode) IsAdvanced() bool {
	return m == FeeModeAdvanced
}
