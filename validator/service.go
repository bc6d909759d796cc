package validator

import (
	"errors"

	"github.com/alovak/cardcheck/cardtype"
	"github.com/alovak/cardcheck/internal/pan"
	"github.com/alovak/cardcheck/validator/models"
)

var ErrUnknownCardType = errors.New("unknown card type")

// Validator runs the format validation pipeline against an immutable
// registry and MII set. It holds no mutable state and is safe for
// concurrent use.
type Validator struct {
	registry *cardtype.Registry
	mii      MIISet
}

func New(registry *cardtype.Registry, mii MIISet) *Validator {
	if registry == nil {
		registry = cardtype.Default()
	}
	return &Validator{
		registry: registry,
		mii:      mii,
	}
}

// Registry exposes the read-only card type table.
func (v *Validator) Registry() *cardtype.Registry {
	return v.registry
}

// AcceptedMII returns the configured MII set.
func (v *Validator) AcceptedMII() MIISet {
	return v.mii
}

// DisplayName returns the configured name for a card type id, "" if unknown.
func (v *Validator) DisplayName(id string) string {
	return v.registry.DisplayName(id)
}

// Validate checks raw against the pipeline: format, card type filter, MII,
// IIN and Luhn, stopping at the first failing step. An empty raw or
// cardType means the value was not supplied.
func (v *Validator) Validate(raw, cardType string) models.Result {
	result := models.Result{
		Status:         models.StatusInvalid,
		CandidateTypes: []string{},
	}

	if raw == "" {
		result.Reason = models.ReasonFormat
		return result
	}

	if cardType != "" && !v.registry.Active(cardType) {
		result.Reason = models.ReasonCardType
		return result
	}

	digits := pan.Sanitize(raw)

	if !v.mii.Check(digits) {
		result.Reason = models.ReasonMII
		return result
	}

	result.CandidateTypes = MatchIIN(v.registry, digits, cardType)
	if len(result.CandidateTypes) == 0 {
		result.Reason = models.ReasonIIN
		return result
	}

	if !pan.LuhnValid(digits) {
		result.Reason = models.ReasonAlgorithm
		return result
	}

	result.Status = models.StatusValid
	result.MaskedNumber = pan.Mask(raw)
	return result
}

// MatchIIN returns the ids of active rules whose length and IIN prefix
// accept the sanitized number, in registry order. A non-empty only limits
// matching to that one rule.
func MatchIIN(registry *cardtype.Registry, sanitized, only string) []string {
	return registry.Match(sanitized, only)
}
