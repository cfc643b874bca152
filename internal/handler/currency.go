package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AlexZinkM/wallet-txcore/currency"
	"github.com/AlexZinkM/wallet-txcore/internal/model"
)

// Format handles GET /currency/format
// @Summary      Format an amount
// @Description  Formats an amount in a crypto or fiat currency for a language
// @Tags         currency
// @Produce      json
// @Param        amount    query     string  true   "Decimal amount"
// @Param        currency  query     string  false  "Currency code, defaults to the display currency"
// @Param        language  query     string  false  "Language tag, defaults to the display language"
// @Success      200       {object}  model.FormatResponse
// @Failure      400       {object}  model.ErrorResponse
// @Router       /currency/format [get]
func (h *FormsHandler) Format(w http.ResponseWriter, r *http.Request) {
	amount, ok := parseAmount(w, r)
	if !ok {
		return
	}

	ctx := currency.Context{
		CurrencyCode: queryOr(r, "currency", h.deps.DisplayCurrency),
		LanguageTag:  queryOr(r, "language", h.deps.Language),
	}
	formatted, err := currency.Format(&amount, ctx)
	if err != nil {
		h.writeCurrencyError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.FormatResponse{
		Amount:    amount.String(),
		Currency:  strings.ToLower(ctx.CurrencyCode),
		Language:  ctx.LanguageTag,
		Formatted: formatted,
	})
}

// Convert handles GET /currency/convert
// @Summary      Convert an amount
// @Description  Converts an amount of the network coin into a currency at the latest price
// @Tags         currency
// @Produce      json
// @Param        amount    query     string  true   "Decimal amount of the network coin"
// @Param        currency  query     string  false  "Target currency, defaults to the display currency"
// @Param        language  query     string  false  "Language tag used for the formatted value"
// @Success      200       {object}  model.ConvertResponse
// @Failure      400       {object}  model.ErrorResponse
// @Failure      503       {object}  model.ErrorResponse
// @Router       /currency/convert [get]
func (h *FormsHandler) Convert(w http.ResponseWriter, r *http.Request) {
	amount, ok := parseAmount(w, r)
	if !ok {
		return
	}

	ctx := h.currencyContext()
	ctx.CurrencyCode = queryOr(r, "currency", ctx.CurrencyCode)
	ctx.LanguageTag = queryOr(r, "language", ctx.LanguageTag)

	value, err := currency.Convert(amount, ctx)
	if err != nil {
		h.writeCurrencyError(w, err)
		return
	}
	formatted, err := currency.Format(&value, ctx)
	if err != nil {
		h.writeCurrencyError(w, err)
		return
	}

	resp := model.ConvertResponse{
		Amount:    amount.String(),
		Currency:  strings.ToLower(ctx.CurrencyCode),
		Value:     value.String(),
		Formatted: formatted,
	}
	if h.deps.Oracle != nil {
		snap := h.deps.Oracle.Snapshot()
		resp.Source = snap.Source
		if !snap.UpdatedAt.IsZero() {
			resp.UpdatedAt = snap.UpdatedAt.UTC().Format(time.RFC3339)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseAmount(w http.ResponseWriter, r *http.Request) (decimal.Decimal, bool) {
	raw := r.URL.Query().Get("amount")
	if raw == "" {
		writeError(w, http.StatusBadRequest, model.CodeBadRequest, "amount is required")
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.CodeBadRequest, "amount must be a decimal number")
		return decimal.Zero, false
	}
	return amount, true
}

func (h *FormsHandler) writeCurrencyError(w http.ResponseWriter, err error) {
	if status, code, ok := isCurrencyError(err); ok {
		writeError(w, status, code, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, model.CodeInternal, err.Error())
}
