package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/AlexZinkM/wallet-txcore/currency"
	"github.com/AlexZinkM/wallet-txcore/internal/common"
	"github.com/AlexZinkM/wallet-txcore/internal/i18n"
	"github.com/AlexZinkM/wallet-txcore/internal/metrics"
	"github.com/AlexZinkM/wallet-txcore/internal/model"
	"github.com/AlexZinkM/wallet-txcore/market"
	"github.com/AlexZinkM/wallet-txcore/transaction"
)

// Deps are the collaborators of the form handlers.
type Deps struct {
	Registry *transaction.Registry
	Bindings transaction.Bindings
	Oracle   *market.Oracle
	Catalog  *i18n.Catalog
	Metrics  *metrics.Metrics
	Logger   *zap.Logger
	Handoff  transaction.Handoff

	DisplayCurrency string
	Language        string
	ReturnObject    bool
}

// FormsHandler serves the transaction forms of the local API
type FormsHandler struct {
	deps Deps
	log  *zap.Logger

	mu    sync.Mutex
	forms map[uuid.UUID]*transaction.Workflow
}

// NewFormsHandler creates a new FormsHandler
func NewFormsHandler(deps Deps) *FormsHandler {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &FormsHandler{
		deps:  deps,
		log:   log,
		forms: make(map[uuid.UUID]*transaction.Workflow),
	}
}

// Register adds the handler's routes to mux
func (h *FormsHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /kinds", h.ListKinds)
	mux.HandleFunc("POST /forms", h.CreateForm)
	mux.HandleFunc("GET /forms/{id}", h.GetForm)
	mux.HandleFunc("PUT /forms/{id}/draft", h.UpdateDraft)
	mux.HandleFunc("POST /forms/{id}/submit", h.Submit)
	mux.HandleFunc("DELETE /forms/{id}", h.CancelForm)
	mux.HandleFunc("GET /currency/format", h.Format)
	mux.HandleFunc("GET /currency/convert", h.Convert)
}

func (h *FormsHandler) currencyContext() currency.Context {
	ctx := currency.Context{
		CurrencyCode: h.deps.DisplayCurrency,
		LanguageTag:  h.deps.Language,
	}
	if h.deps.Oracle != nil {
		ctx.Prices = h.deps.Oracle.Prices()
	}
	return ctx
}

func (h *FormsHandler) translator(r *http.Request) *i18n.Translator {
	lang := r.URL.Query().Get("language")
	if lang == "" {
		lang = h.deps.Language
	}
	tr, err := h.deps.Catalog.Translator(lang)
	if err != nil {
		tr, _ = h.deps.Catalog.Translator("")
	}
	return tr
}

// ListKinds handles GET /kinds
// @Summary      List transaction kinds
// @Description  Lists every registered kind with its fee bounds and default payload
// @Tags         forms
// @Produce      json
// @Success      200  {array}  model.KindResponse
// @Router       /kinds [get]
func (h *FormsHandler) ListKinds(w http.ResponseWriter, r *http.Request) {
	kinds := h.deps.Registry.Kinds()
	out := make([]model.KindResponse, 0, len(kinds))
	for _, d := range kinds {
		out = append(out, kindResponse(d))
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateForm handles POST /forms
// @Summary      Open a transaction form
// @Description  Opens a draft for the given kind, optionally prefilled (e.g. with the current business)
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateFormRequest  true  "Kind and prefill"
// @Success      201      {object}  model.FormResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /forms [post]
func (h *FormsHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	var req model.CreateFormRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.CodeBadRequest, err.Error())
		return
	}

	key := transaction.NewKey(transaction.Group(req.TypeGroup), transaction.Type(req.Type))
	opts := []transaction.Option{
		transaction.WithLogger(h.log),
		transaction.WithTranslator(h.translator(r)),
		transaction.WithCurrency(h.currencyContext),
		transaction.WithReturnObject(h.deps.ReturnObject),
		transaction.WithPrefill(transaction.Asset(req.Prefill)),
	}
	if h.deps.Handoff != nil {
		opts = append(opts, transaction.WithHandoff(h.deps.Handoff))
	}
	if h.deps.Metrics != nil {
		opts = append(opts, transaction.WithObserver(h.deps.Metrics.ObserveTransition))
	}

	wf, err := transaction.NewWorkflow(h.deps.Registry, h.deps.Bindings, key, opts...)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			writeError(w, http.StatusNotFound, model.CodeKindNotFound, err.Error())
			return
		}
		h.log.Error("failed to open form", zap.Stringer("key", key), zap.Error(err))
		writeError(w, http.StatusInternalServerError, model.CodeInternal, err.Error())
		return
	}

	id := uuid.New()
	h.mu.Lock()
	h.forms[id] = wf
	count := len(h.forms)
	h.mu.Unlock()
	h.setOpenForms(count)

	writeJSON(w, http.StatusCreated, formResponse(id, wf, h.translator(r)))
}

// GetForm handles GET /forms/{id}
// @Summary      Get a form
// @Description  Returns the draft (without secrets), state and last field errors
// @Tags         forms
// @Produce      json
// @Param        id   path      string  true  "Form id"
// @Success      200  {object}  model.FormResponse
// @Failure      404  {object}  model.ErrorResponse
// @Router       /forms/{id} [get]
func (h *FormsHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	id, wf, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, formResponse(id, wf, h.translator(r)))
}

// UpdateDraft handles PUT /forms/{id}/draft
// @Summary      Edit a draft
// @Description  Sets fee mode, fee and secrets, and merges asset fields into the draft
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        id       path      string              true  "Form id"
// @Param        request  body      model.DraftRequest  true  "Draft changes"
// @Success      200      {object}  model.FormResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /forms/{id}/draft [put]
func (h *FormsHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	id, wf, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req model.DraftRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.CodeBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, model.CodeBadRequest, err.Error())
		return
	}

	decimals := int(wf.Descriptor().FeeDecimals())
	mode, _ := transaction.ParseFeeMode(req.FeeMode)

	var fee *uint64
	if req.Fee != nil {
		units, err := common.ParseWithDecimals(*req.Fee, decimals)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.CodeBadRequest, "invalid fee: "+err.Error())
			return
		}
		fee = &units
	}
	var fiat *decimal.Decimal
	if req.FiatFee != nil {
		d := decimal.RequireFromString(*req.FiatFee)
		fiat = &d
	}

	err := wf.Edit(func(d *transaction.Draft) {
		if req.FeeMode != "" {
			d.FeeMode = mode
			if !mode.IsAdvanced() {
				d.Fee = nil
				d.FiatFee = nil
			}
		}
		if fee != nil {
			d.Fee = fee
			d.FiatFee = nil
		}
		if fiat != nil {
			d.FiatFee = fiat
		}
		if req.Passphrase != "" {
			replaceSecret(&d.Passphrase, req.Passphrase)
		}
		if req.SecondPassphrase != "" {
			replaceSecret(&d.SecondPassphrase, req.SecondPassphrase)
		}
		if req.WalletPassword != "" {
			replaceSecret(&d.WalletPassword, req.WalletPassword)
		}
		for name, v := range req.Asset {
			d.Asset[name] = v
		}
	})
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, formResponse(id, wf, h.translator(r)))
}

// Submit handles POST /forms/{id}/submit
// @Summary      Submit a form
// @Description  Validates the draft, computes the fee and builds the transaction
// @Tags         forms
// @Produce      json
// @Param        id   path      string  true  "Form id"
// @Success      200  {object}  model.SubmitResponse
// @Failure      409  {object}  model.ErrorResponse
// @Failure      422  {object}  model.SubmitResponse
// @Failure      502  {object}  model.ErrorResponse
// @Router       /forms/{id}/submit [post]
func (h *FormsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, wf, ok := h.lookup(w, r)
	if !ok {
		return
	}

	res, err := wf.Submit(r.Context())
	if err != nil && res.Signable == nil {
		h.writeWorkflowError(w, err)
		return
	}
	if err != nil {
		h.log.Error("handoff failed", zap.String("form", id.String()), zap.Error(err))
	}

	tr := h.translator(r)
	resp := model.SubmitResponse{
		ID:     id.String(),
		State:  string(wf.State()),
		Errors: fieldErrors(res.Errors, tr),
	}
	if len(res.Errors) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	resp.Transaction = signableResponse(res.Signable, int(wf.Descriptor().FeeDecimals()))
	writeJSON(w, http.StatusOK, resp)
}

// CancelForm handles DELETE /forms/{id}
// @Summary      Cancel a form
// @Description  Cancels the form, abandoning an in-flight build, and forgets it
// @Tags         forms
// @Param        id   path      string  true  "Form id"
// @Success      204
// @Failure      404  {object}  model.ErrorResponse
// @Router       /forms/{id} [delete]
func (h *FormsHandler) CancelForm(w http.ResponseWriter, r *http.Request) {
	id, wf, ok := h.lookup(w, r)
	if !ok {
		return
	}

	// Closed forms are forgotten too.
	_ = wf.Cancel()

	h.mu.Lock()
	delete(h.forms, id)
	count := len(h.forms)
	h.mu.Unlock()
	h.setOpenForms(count)

	w.WriteHeader(http.StatusNoContent)
}

func (h *FormsHandler) lookup(w http.ResponseWriter, r *http.Request) (uuid.UUID, *transaction.Workflow, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.CodeBadRequest, "invalid form id")
		return uuid.Nil, nil, false
	}

	h.mu.Lock()
	wf, ok := h.forms[id]
	h.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, model.CodeFormNotFound, "form not found")
		return uuid.Nil, nil, false
	}
	return id, wf, true
}

func (h *FormsHandler) setOpenForms(n int) {
	if h.deps.Metrics != nil {
		h.deps.Metrics.OpenForms.Set(float64(n))
	}
}

func (h *FormsHandler) writeWorkflowError(w http.ResponseWriter, err error) {
	var be *transaction.BuildError
	switch {
	case errors.As(err, &be):
		writeError(w, http.StatusBadGateway, model.CodeBuildFailed, be.Message)
	case errors.Is(err, transaction.ErrSubmissionInProgress):
		writeError(w, http.StatusConflict, model.CodeSubmissionInProgress, err.Error())
	case errors.Is(err, transaction.ErrNotEditable):
		writeError(w, http.StatusConflict, model.CodeNotEditable, err.Error())
	case errors.Is(err, transaction.ErrWorkflowClosed):
		writeError(w, http.StatusGone, model.CodeFormClosed, err.Error())
	case errors.Is(err, transaction.ErrCancelled):
		writeError(w, http.StatusConflict, model.CodeCancelled, err.Error())
	default:
		h.log.Error("form request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, model.CodeInternal, err.Error())
	}
}

// replaceSecret wipes the old secret before storing the new one.
func replaceSecret(dst *[]byte, value string) {
	clear(*dst)
	*dst = []byte(value)
}

func kindResponse(d transaction.Descriptor) model.KindResponse {
	decimals := int(d.FeeDecimals())
	fields := make([]model.FieldInfo, 0, len(d.Fields))
	for _, f := range d.Fields {
		fields = append(fields, model.FieldInfo{Name: f.Name, Kind: f.Kind.String(), Required: f.Required})
	}
	return model.KindResponse{
		Name:       d.Name,
		Type:       uint16(d.Key.Type),
		TypeGroup:  uint16(d.Key.Group),
		StaticFee:  common.FormatWithDecimals(d.StaticFee, decimals),
		MinimumFee: common.FormatWithDecimals(d.MinimumFee, decimals),
		MaximumFee: common.FormatWithDecimals(d.MaximumFee, decimals),
		Fields:     fields,
		Defaults:   d.Defaults(),
	}
}

func formResponse(id uuid.UUID, wf *transaction.Workflow, tr *i18n.Translator) model.FormResponse {
	d := wf.Descriptor()
	draft := wf.Draft()
	decimals := int(d.FeeDecimals())

	resp := model.FormResponse{
		ID:            id.String(),
		Kind:          d.Name,
		Type:          uint16(d.Key.Type),
		TypeGroup:     uint16(d.Key.Group),
		State:         string(wf.State()),
		FeeMode:       string(draft.FeeMode),
		Fee:           common.FormatWithDecimals(draftFee(d, draft), decimals),
		MinimumFee:    common.FormatWithDecimals(d.MinimumFee, decimals),
		MaximumFee:    common.FormatWithDecimals(d.MaximumFee, decimals),
		HasPassphrase: draft.HasPassphrase(),
		Asset:         draft.Asset,
		Errors:        fieldErrors(wf.Errors(), tr),
	}
	if draft.FiatFee != nil {
		resp.FiatFee = draft.FiatFee.String()
	}
	return resp
}

// draftFee is the fee shown for a draft: the static fee in FIXED mode, the
// entered fee in ADVANCED mode, and zero while none was entered.
func draftFee(d transaction.Descriptor, draft transaction.Draft) uint64 {
	switch {
	case !draft.FeeMode.IsAdvanced():
		return d.StaticFee
	case draft.Fee != nil:
		return *draft.Fee
	}
	return 0
}

func fieldErrors(errs transaction.FieldErrors, tr *i18n.Translator) []model.FieldErrorResponse {
	if len(errs) == 0 {
		return nil
	}
	out := make([]model.FieldErrorResponse, 0, len(errs))
	for _, e := range errs {
		out = append(out, model.FieldErrorResponse{Field: e.Field, Reason: e.Reason, Message: tr.Reason(e.Reason)})
	}
	return out
}

func signableResponse(s *transaction.Signable, decimals int) *model.SignableResponse {
	resp := &model.SignableResponse{
		Kind:      s.Name,
		Type:      uint16(s.Key.Type),
		TypeGroup: uint16(s.Key.Group),
		Fee:       common.FormatWithDecimals(s.Fee, decimals),
		Asset:     s.Asset,
	}
	if len(s.Data) > 0 {
		resp.Data = json.RawMessage(s.Data)
	}
	return resp
}

func isCurrencyError(err error) (int, string, bool) {
	switch {
	case errors.Is(err, currency.ErrUnsupportedCurrency):
		return http.StatusBadRequest, model.CodeUnsupportedCurrency, true
	case errors.Is(err, currency.ErrUnsupportedLanguage):
		return http.StatusBadRequest, model.CodeUnsupportedLanguage, true
	case errors.Is(err, market.ErrPriceUnavailable):
		return http.StatusServiceUnavailable, model.CodePriceUnavailable, true
	}
	return 0, "", false
}

func queryOr(r *http.Request, name, fallback string) string {
	if v := strings.TrimSpace(r.URL.Query().Get(name)); v != "" {
		return v
	}
	return fallback
}
