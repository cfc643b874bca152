// Package i18n holds the user-facing messages of the transaction forms.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/AlexZinkM/wallet-txcore/currency"
	"github.com/AlexZinkM/wallet-txcore/transaction"
)

// ReasonKey returns the translation key of a field error reason.
func ReasonKey(reason string) string {
	return "FIELD.ERROR." + strings.ToUpper(reason)
}

var supported = []language.Tag{language.English, language.German, language.French}

var kindErrors = map[language.Tag]string{
	language.English: "The %s transaction could not be created",
	language.German:  "Die Transaktion %s konnte nicht erstellt werden",
	language.French:  "La transaction %s n'a pas pu être créée",
}

var reasons = map[string]map[language.Tag]string{
	transaction.ReasonRequired: {
		language.English: "This field is required",
		language.German:  "Dieses Feld ist erforderlich",
		language.French:  "Ce champ est obligatoire",
	},
	transaction.ReasonUnknownField: {
		language.English: "Unknown field",
		language.German:  "Unbekanntes Feld",
		language.French:  "Champ inconnu",
	},
	transaction.ReasonInvalidType: {
		language.English: "Invalid value",
		language.German:  "Ungültiger Wert",
		language.French:  "Valeur invalide",
	},
	transaction.ReasonTooLong: {
		language.English: "Too long",
		language.German:  "Zu lang",
		language.French:  "Trop long",
	},
	transaction.ReasonTooShort: {
		language.English: "Too short",
		language.German:  "Zu kurz",
		language.French:  "Trop court",
	},
	transaction.ReasonTooFew: {
		language.English: "Not enough entries",
		language.German:  "Zu wenige Einträge",
		language.French:  "Pas assez d'entrées",
	},
	transaction.ReasonTooMany: {
		language.English: "Too many entries",
		language.German:  "Zu viele Einträge",
		language.French:  "Trop d'entrées",
	},
	transaction.ReasonOutOfRange: {
		language.English: "Value out of range",
		language.German:  "Wert außerhalb des zulässigen Bereichs",
		language.French:  "Valeur hors limites",
	},
	transaction.ReasonDuplicate: {
		language.English: "Duplicate entry",
		language.German:  "Doppelter Eintrag",
		language.French:  "Entrée en double",
	},
	transaction.ReasonInvalidURL: {
		language.English: "Invalid URL",
		language.German:  "Ungültige URL",
		language.French:  "URL invalide",
	},
	transaction.ReasonInvalidVAT: {
		language.English: "Invalid VAT number",
		language.German:  "Ungültige USt-IdNr.",
		language.French:  "Numéro de TVA invalide",
	},
	transaction.ReasonInvalidAddress: {
		language.English: "Invalid address",
		language.German:  "Ungültige Adresse",
		language.French:  "Adresse invalide",
	},
	transaction.ReasonInvalidPublicKey: {
		language.English: "Invalid public key",
		language.German:  "Ungültiger öffentlicher Schlüssel",
		language.French:  "Clé publique invalide",
	},
	transaction.ReasonInvalidVote: {
		language.English: "Invalid vote",
		language.German:  "Ungültige Stimme",
		language.French:  "Vote invalide",
	},
	transaction.ReasonInvalidUsername: {
		language.English: "Invalid username",
		language.German:  "Ungültiger Benutzername",
		language.French:  "Nom d'utilisateur invalide",
	},
	transaction.ReasonInvalidHash: {
		language.English: "Invalid hash",
		language.German:  "Ungültiger Hash",
		language.French:  "Hash invalide",
	},
	transaction.ReasonInvalidIP: {
		language.English: "Invalid IP address",
		language.German:  "Ungültige IP-Adresse",
		language.French:  "Adresse IP invalide",
	},
	transaction.ReasonPriceUnavailable: {
		language.English: "Price unavailable, try again later",
		language.German:  "Kurs nicht verfügbar, bitte später erneut versuchen",
		language.French:  "Cours indisponible, réessayez plus tard",
	},
}

// Catalog holds the translations of every registered kind.
type Catalog struct {
	builder *catalog.Builder
	matcher language.Matcher
}

// New builds the catalog for the given kinds.
func New(kinds []transaction.Descriptor) (*Catalog, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))

	for _, d := range kinds {
		label := strings.ReplaceAll(d.Name, "_", " ")
		for tag, format := range kindErrors {
			if err := b.SetString(tag, d.ErrorKey, fmt.Sprintf(format, label)); err != nil {
				return nil, fmt.Errorf("failed to add %s message: %w", d.Name, err)
			}
		}
	}
	for reason, texts := range reasons {
		for tag, text := range texts {
			if err := b.SetString(tag, ReasonKey(reason), text); err != nil {
				return nil, fmt.Errorf("failed to add %s message: %w", reason, err)
			}
		}
	}

	return &Catalog{builder: b, matcher: language.NewMatcher(supported)}, nil
}

// Translator returns a translator for the language tag, such as "de_DE".
// Unsupported languages fall back to English.
func (c *Catalog) Translator(lang string) (*Translator, error) {
	tag, err := currency.ParseLanguage(lang)
	if err != nil {
		return nil, err
	}
	_, idx, _ := c.matcher.Match(tag)
	chosen := supported[idx]
	return &Translator{
		tag:     chosen,
		printer: message.NewPrinter(chosen, message.Catalog(c.builder)),
	}, nil
}

// Translator implements transaction.Translator for one language.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// Language returns the language messages are rendered in.
func (t *Translator) Language() language.Tag {
	return t.tag
}

// Translate returns the message for key, or key itself when unknown.
func (t *Translator) Translate(key string) string {
	return t.printer.Sprintf(key)
}

// Reason returns the message of a field error reason.
func (t *Translator) Reason(reason string) string {
	key := ReasonKey(reason)
	if msg := t.Translate(key); msg != key {
		return msg
	}
	return reason
}
