package transaction

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap/zapcore"
)

// Draft is the user-editable state of a form. The secret fields are only
// passed to the handoff after a successful build and are wiped afterwards.
type Draft struct {
	// Fee is the advanced fee in base units; nil until one is entered.
	// FIXED drafts always pay the kind's static fee.
	Fee     *uint64
	FeeMode FeeMode
	// FiatFee, when set in ADVANCED mode, takes precedence over Fee and is
	// converted at the current price.
	FiatFee *decimal.Decimal

	Passphrase       []byte
	SecondPassphrase []byte
	WalletPassword   []byte

	Asset Asset
}

// Credentials are the secrets released to the handoff.
type Credentials struct {
	Passphrase       []byte
	SecondPassphrase []byte
	WalletPassword   []byte
}

// Clone returns a deep copy including the secrets.
func (d Draft) Clone() Draft {
	c := d
	c.Asset = d.Asset.Clone()
	c.Passphrase = cloneBytes(d.Passphrase)
	c.SecondPassphrase = cloneBytes(d.SecondPassphrase)
	c.WalletPassword = cloneBytes(d.WalletPassword)
	if d.Fee != nil {
		fee := *d.Fee
		c.Fee = &fee
	}
	if d.FiatFee != nil {
		fiat := *d.FiatFee
		c.FiatFee = &fiat
	}
	return c
}

// Redacted returns a deep copy with the secrets removed.
func (d Draft) Redacted() Draft {
	c := d.Clone()
	c.Passphrase = nil
	c.SecondPassphrase = nil
	c.WalletPassword = nil
	return c
}

// HasPassphrase reports whether a passphrase was entered.
func (d Draft) HasPassphrase() bool {
	return len(d.Passphrase) > 0
}

func (d *Draft) credentials() Credentials {
	return Credentials{
		Passphrase:       cloneBytes(d.Passphrase),
		SecondPassphrase: cloneBytes(d.SecondPassphrase),
		WalletPassword:   cloneBytes(d.WalletPassword),
	}
}

func (d *Draft) wipe() {
	clear(d.Passphrase)
	clear(d.SecondPassphrase)
	clear(d.WalletPassword)
	d.Passphrase = nil
	d.SecondPassphrase = nil
	d.WalletPassword = nil
}

// Wipe zeroes the secrets in place.
func (c *Credentials) Wipe() {
	clear(c.Passphrase)
	clear(c.SecondPassphrase)
	clear(c.WalletPassword)
}

// MarshalLogObject logs the draft without its secrets.
func (d Draft) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("feeMode", string(d.FeeMode))
	if d.Fee != nil {
		enc.AddUint64("fee", *d.Fee)
	}
	if d.FiatFee != nil {
		enc.AddString("fiatFee", d.FiatFee.String())
	}
	enc.AddBool("hasPassphrase", len(d.Passphrase) > 0)
	enc.AddBool("hasSecondPassphrase", len(d.SecondPassphrase) > 0)
	enc.AddInt("assetFields", len(d.Asset))
	return nil
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
