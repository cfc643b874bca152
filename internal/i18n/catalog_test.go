package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/AlexZinkM/wallet-txcore/transaction"
)

func newCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New(transaction.StandardKinds())
	require.NoError(t, err)
	return c
}

func TestTranslator_KindErrors(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)
	key := "TRANSACTION.ERROR.VALIDATION.BUSINESS_UPDATE"

	en, err := c.Translator("en_US")
	require.NoError(t, err)
	assert.Equal(t, "The business update transaction could not be created", en.Translate(key))

	de, err := c.Translator("de_DE")
	require.NoError(t, err)
	assert.Equal(t, language.German, de.Language())
	assert.Equal(t, "Die Transaktion business update konnte nicht erstellt werden", de.Translate(key))

	assert.Equal(t, "NO.SUCH.KEY", en.Translate("NO.SUCH.KEY"))
}

func TestTranslator_Fallback(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)

	ja, err := c.Translator("ja_JP")
	require.NoError(t, err)
	assert.Equal(t, language.English, ja.Language())
	assert.Equal(t, "This field is required", ja.Reason(transaction.ReasonRequired))

	fr, err := c.Translator("fr_CA")
	require.NoError(t, err)
	assert.Equal(t, "Ce champ est obligatoire", fr.Reason(transaction.ReasonRequired))
	assert.Equal(t, "made_up", fr.Reason("made_up"))

	_, err = c.Translator("not a tag!")
	assert.Error(t, err)
}

func TestCatalog_CoversReasons(t *testing.T) {
	t.Parallel()

	en, err := newCatalog(t).Translator("en")
	require.NoError(t, err)

	for reason := range reasons {
		assert.NotEqual(t, reason, en.Reason(reason))
	}
}
