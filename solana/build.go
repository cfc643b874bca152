package solana

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/AlexZinkM/wallet-txcore/internal/common"
	"github.com/AlexZinkM/wallet-txcore/transaction"
)

// BlockhashSource provides the recent blockhash a transaction is bound to.
type BlockhashSource interface {
	LatestBlockhash(ctx context.Context) (solana.Hash, error)
}

// RPCBlockhash reads the latest finalized blockhash over JSON-RPC.
type RPCBlockhash struct {
	rpcClient *rpc.Client
}

// NewRPCBlockhash creates a blockhash source for the given RPC URL.
func NewRPCBlockhash(rpcURL string) *RPCBlockhash {
	return &RPCBlockhash{rpcClient: rpc.New(rpcURL)}
}

func (r *RPCBlockhash) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	recent, err := r.rpcClient.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("failed to get recent blockhash: %w", err)
	}
	return recent.Value.Blockhash, nil
}

// TransferBuilder builds unsigned SOL transfers. Signing happens after the
// handoff, so the builder never sees a private key.
type TransferBuilder struct {
	blockhash BlockhashSource
}

func NewTransferBuilder(blockhash BlockhashSource) *TransferBuilder {
	return &TransferBuilder{blockhash: blockhash}
}

// transferData is the Signable payload of a SOL transfer.
type transferData struct {
	Message   string          `json:"message"`
	Blockhash string          `json:"blockhash"`
	FeePayer  string          `json:"feePayer"`
	Object    *transferObject `json:"object,omitempty"`
}

type transferObject struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Lamports  uint64 `json:"lamports"`
	AmountSOL string `json:"amountSol"`
	FeeSOL    string `json:"feeSol"`
}

func (b *TransferBuilder) Build(ctx context.Context, key transaction.Key, payload transaction.Payload, _ bool, returnObject bool) (*transaction.Signable, error) {
	if key != Key {
		return nil, fmt.Errorf("unsupported transaction kind %s", key)
	}

	fromPubkey, err := solana.PublicKeyFromBase58(payload.Asset.String("from"))
	if err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	toPubkey, err := solana.PublicKeyFromBase58(payload.Asset.String("recipientId"))
	if err != nil {
		return nil, fmt.Errorf("invalid to address: %w", err)
	}
	lamports, ok := payload.Asset["amount"].(uint64)
	if !ok || lamports == 0 {
		return nil, fmt.Errorf("invalid amount")
	}

	recent, err := b.blockhash.LatestBlockhash(ctx)
	if err != nil {
		return nil, err
	}

	transferInstruction := system.NewTransferInstruction(
		lamports,
		fromPubkey,
		toPubkey,
	).Build()

	tx, err := solana.NewTransaction(
		[]solana.Instruction{transferInstruction},
		recent,
		solana.TransactionPayer(fromPubkey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	message, err := tx.Message.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to encode transaction message: %w", err)
	}

	data := transferData{
		Message:   base64.StdEncoding.EncodeToString(message),
		Blockhash: recent.String(),
		FeePayer:  fromPubkey.String(),
	}
	if returnObject {
		data.Object = &transferObject{
			From:      fromPubkey.String(),
			To:        toPubkey.String(),
			Lamports:  lamports,
			AmountSOL: common.LamportsToSOL(lamports),
			FeeSOL:    common.LamportsToSOL(payload.Fee),
		}
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction data: %w", err)
	}

	return &transaction.Signable{
		Key:   key,
		Fee:   payload.Fee,
		Asset: payload.Asset,
		Data:  raw,
	}, nil
}
