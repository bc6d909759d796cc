package validator

import (
	"encoding/json"
	"net/http"

	"github.com/alovak/cardcheck/cardtype"
	"github.com/alovak/cardcheck/internal/pan"
	"github.com/alovak/cardcheck/validator/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// API is a HTTP API for the validation pipeline
type API struct {
	validator *Validator
	metrics   *Metrics
	logger    *slog.Logger
}

func NewAPI(validator *Validator, metrics *Metrics, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		validator: validator,
		metrics:   metrics,
		logger:    logger,
	}
}

func (a *API) AppendRoutes(r chi.Router) {
	r.Post("/validate", a.validate)
	r.Route("/card-types", func(r chi.Router) {
		r.Get("/", a.listCardTypes)
		r.Get("/{cardTypeID}", a.getCardType)
	})
}

type ValidateRequest struct {
	Number   string `json:"number"`
	CardType string `json:"card_type,omitempty"`
}

type ValidateResponse struct {
	CheckID string `json:"check_id"`
	models.Result
	CardTypeNames []string `json:"card_type_names"`
}

// Check runs Validate and decorates the result with a check id and the
// display names of the candidate types.
func (v *Validator) Check(number, cardType string) ValidateResponse {
	result := v.Validate(number, cardType)

	resp := ValidateResponse{
		CheckID:       uuid.New().String(),
		Result:        result,
		CardTypeNames: make([]string, 0, len(result.CandidateTypes)),
	}
	for _, id := range result.CandidateTypes {
		resp.CardTypeNames = append(resp.CardTypeNames, v.DisplayName(id))
	}
	return resp
}

type CardTypeResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	Length    int    `json:"length"`
	IINRanges string `json:"iin_ranges"`
}

func (a *API) validate(w http.ResponseWriter, r *http.Request) {
	req := ValidateRequest{}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := a.validator.Check(req.Number, req.CardType)
	a.metrics.Observe("http", resp.Result)

	a.logger.Info("card number checked",
		slog.String("check_id", resp.CheckID),
		slog.String("masked", pan.Mask(req.Number)),
		slog.String("status", string(resp.Status)),
		slog.String("reason", string(resp.Reason)),
		slog.String("card_types", resp.TypeString()),
	)

	writeJSON(w, http.StatusOK, resp)
}

func (a *API) listCardTypes(w http.ResponseWriter, r *http.Request) {
	rules := a.validator.Registry().Rules()
	out := make([]CardTypeResponse, 0, len(rules))
	for _, rule := range rules {
		out = append(out, NewCardTypeResponse(rule))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) getCardType(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "cardTypeID")

	rule, ok := a.validator.Registry().Lookup(id)
	if !ok {
		http.Error(w, ErrUnknownCardType.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, NewCardTypeResponse(rule))
}

func NewCardTypeResponse(rule cardtype.Rule) CardTypeResponse {
	return CardTypeResponse{
		ID:        rule.ID,
		Name:      rule.Name,
		Active:    rule.Active,
		Length:    rule.Length,
		IINRanges: cardtype.FormatIINRanges(rule.IINRanges),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
