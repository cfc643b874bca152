package transaction

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		rule  Rule
		value any
		want  string
	}{
		{"url https", URL(), "https://acme.io", ""},
		{"url without host", URL(), "https://", ReasonInvalidURL},
		{"url ftp", URL(), "ftp://acme.io", ReasonInvalidURL},
		{"url not a string", URL(), uint64(1), ReasonInvalidType},
		{"vat", VAT(), "GB123456789", ""},
		{"vat too short", VAT(), "GB1234", ReasonInvalidVAT},
		{"vat punctuation", VAT(), "GB-1234567", ReasonInvalidVAT},
		{"max length counts runes", MaxLength(3), "äöü", ""},
		{"max length", MaxLength(3), "abcd", ReasonTooLong},
		{"min length", MinLength(2), "a", ReasonTooShort},
		{"address", Address(), testAddress, ""},
		{"address with zero", Address(), "0" + testAddress[1:], ReasonInvalidAddress},
		{"address too short", Address(), testAddress[:33], ReasonInvalidAddress},
		{"public key", PublicKey(), testPublicKey, ""},
		{"public key uncompressed prefix", PublicKey(), "04" + testPublicKey[2:], ReasonInvalidPublicKey},
		{"hash", Hash(), testHash, ""},
		{"hash with 0x prefix", Hash(), "0x" + testHash[2:], ReasonInvalidHash},
		{"hash not hex", Hash(), strings.Repeat("g", 64), ReasonInvalidHash},
		{"ipfs", IPFSHash(), "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG", ""},
		{"ipfs wrong prefix", IPFSHash(), "Xm" + "YwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG", ReasonInvalidHash},
		{"username", Username(), "genesis_1", ""},
		{"username upper case", Username(), "Genesis", ReasonInvalidUsername},
		{"ip v4", IP(), "10.0.0.1", ""},
		{"ip v6", IP(), "::1", ""},
		{"ip host name", IP(), "localhost", ReasonInvalidIP},
		{"range", Range(1, 10), uint64(10), ""},
		{"range above", Range(1, 10), uint64(11), ReasonOutOfRange},
		{"range wrong type", Range(1, 10), "5", ReasonInvalidType},
		{"items too few", Items(2, 3), []string{"a"}, ReasonTooFew},
		{"items too many", Items(1, 2), []string{"a", "b", "c"}, ReasonTooMany},
		{"unique", Unique(), []string{"a", "b"}, ""},
		{"unique duplicate", Unique(), []string{"a", "a"}, ReasonDuplicate},
		{"each ip", Each(IP()), []string{"10.0.0.1", "nope"}, ReasonInvalidIP},
		{"votes", Votes(), []string{"+" + testPublicKey}, ""},
		{"votes bad sign", Votes(), []string{"*" + testPublicKey}, ReasonInvalidVote},
		{"payments", Payments(), []Payment{{RecipientID: testAddress, Amount: 1}}, ""},
		{"payments zero amount", Payments(), []Payment{{RecipientID: testAddress}}, ReasonOutOfRange},
		{"payments bad recipient", Payments(), []Payment{{RecipientID: "nope", Amount: 1}}, ReasonInvalidAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.rule(tt.value))
		})
	}
}
