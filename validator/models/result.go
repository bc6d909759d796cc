package models

import "strings"

type Status string

const (
	StatusValid   Status = "valid"
	StatusInvalid Status = "invalid"
)

// Reason names the pipeline step that rejected a number.
type Reason string

const (
	ReasonNone      Reason = ""
	ReasonFormat    Reason = "format"
	ReasonCardType  Reason = "cardtype"
	ReasonMII       Reason = "mii"
	ReasonIIN       Reason = "iin"
	ReasonAlgorithm Reason = "algorithm"
)

// Result is produced fresh by every validation and owned by the caller.
type Result struct {
	Status         Status   `json:"status"`
	CandidateTypes []string `json:"card_types"`
	MaskedNumber   string   `json:"masked_number"`
	Reason         Reason   `json:"reason,omitempty"`
}

func (r Result) Valid() bool {
	return r.Status == StatusValid
}

// TypeString joins candidate type ids with "|" for display.
func (r Result) TypeString() string {
	return strings.Join(r.CandidateTypes, "|")
}
