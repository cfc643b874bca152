// Package solana provides the SOL transfer kind and its build capability.
package solana

import (
	"github.com/gagliardetto/solana-go"

	"github.com/AlexZinkM/wallet-txcore/internal/common"
	"github.com/AlexZinkM/wallet-txcore/transaction"
)

const (
	// GroupSolana is the type group the SOL kinds are registered under.
	GroupSolana transaction.Group = 100

	TypeTransfer transaction.Type = 0

	// Capability is the capability name of TransferBuilder.
	Capability = "buildSolanaTransfer"

	solFeeLamports = 5000 // Fee in lamports (0.000005 SOL)
	maxLamports    = 500_000_000 * 1_000_000_000
)

// Key is the key of the SOL transfer kind.
var Key = transaction.NewKey(GroupSolana, TypeTransfer)

// Descriptor returns the SOL transfer kind. Amounts and fees are in lamports.
// A legacy transfer pays a flat fee per signature, so the advanced range
// collapses to that single value.
func Descriptor() transaction.Descriptor {
	return transaction.Descriptor{
		Key:        Key,
		Name:       "solana_transfer",
		Decimals:   common.SOLDecimals,
		StaticFee:  solFeeLamports,
		MinimumFee: solFeeLamports,
		MaximumFee: solFeeLamports,
		Fields: []transaction.Field{
			{Name: "from", Kind: transaction.KindString, Required: true, Rules: []transaction.Rule{addressRule}},
			{Name: "recipientId", Kind: transaction.KindString, Required: true, Rules: []transaction.Rule{addressRule}},
			{Name: "amount", Kind: transaction.KindInteger, Required: true, Rules: []transaction.Rule{transaction.Range(1, maxLamports)}},
		},
		Capability: Capability,
		ErrorKey:   "TRANSACTION.ERROR.VALIDATION.SOLANA_TRANSFER",
	}
}

func addressRule(v any) string {
	s, ok := v.(string)
	if !ok {
		return transaction.ReasonInvalidType
	}
	if !isValidSolanaAddress(s) {
		return transaction.ReasonInvalidAddress
	}
	return ""
}

// isValidSolanaAddress validates a Solana address
func isValidSolanaAddress(address string) bool {
	_, err := solana.PublicKeyFromBase58(address)
	return err == nil
}
