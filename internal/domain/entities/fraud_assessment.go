package entities

import (
	"encoding/json"
	"time"
)

// FraudAction is the normalized outcome of a risk screening.
type FraudAction string

const (
	FraudActionAllow FraudAction = "allow"
	FraudActionWarn  FraudAction = "warn"
	FraudActionBlock FraudAction = "block"
	FraudActionError FraudAction = "error"
)

// AssessmentSource tells who produced an audit entry.
type AssessmentSource string

const (
	AssessmentSourceProvider AssessmentSource = "provider"
	AssessmentSourceOverride AssessmentSource = "admin_override"
	AssessmentSourceReject   AssessmentSource = "admin_reject"
)

type FraudThresholds struct {
	Block    float64 `json:"block"`
	Warn     float64 `json:"warn"`
	FailOpen bool    `json:"fail_open"`
}

// FraudAssessment is one entry of the append-only screening audit trail.
type FraudAssessment struct {
	ID         string           `json:"id"`
	Source     AssessmentSource `json:"source"`
	Action     FraudAction      `json:"action"`
	Score      *float64         `json:"score,omitempty"`
	Flagged    bool             `json:"flagged"`
	Error      string           `json:"error,omitempty"`
	Thresholds FraudThresholds  `json:"thresholds"`
	Raw        json.RawMessage  `json:"raw,omitempty"`
	Actor      string           `json:"actor,omitempty"`
	Note       string           `json:"note,omitempty"`
	CheckedAt  time.Time        `json:"checked_at"`
}

// Halts reports whether the checkout must stop before any payment is attempted.
func (a FraudAssessment) Halts() bool {
	switch a.Action {
	case FraudActionBlock:
		return true
	case FraudActionError:
		return !a.Thresholds.FailOpen
	}
	return false
}

// FraudStatus maps the action onto the quote's fraud status.
func (a FraudAssessment) FraudStatus() FraudStatus {
	switch a.Action {
	case FraudActionAllow:
		return FraudStatusOK
	case FraudActionWarn:
		return FraudStatusWarn
	case FraudActionBlock:
		return FraudStatusBlock
	default:
		return FraudStatusError
	}
}
