// Package fraud turns a risk provider reply into an allow/warn/block/error action.
package fraud

import (
	"encoding/json"
	"errors"
	"time"

	"policy_checkout/internal/domain/entities"
)

const (
	DefaultBlockThreshold = 80
	DefaultWarnThreshold  = 60
)

var ErrProviderUnavailable = errors.New("risk provider unavailable")

// Config is the injected decision policy.
type Config struct {
	BlockThreshold float64
	WarnThreshold  float64
	FailOpen       bool
}

func (c Config) Thresholds() entities.FraudThresholds {
	return entities.FraudThresholds{Block: c.BlockThreshold, Warn: c.WarnThreshold, FailOpen: c.FailOpen}
}

// ProviderResponse is a parsed provider reply. A nil response with a nil error means
// nothing was returned at all.
type ProviderResponse struct {
	Score        *float64
	Flagged      bool
	ErrorMessage string
	Raw          json.RawMessage
}

// Decide applies, in order: provider error, explicit flag, score thresholds, allow.
func Decide(resp *ProviderResponse, callErr error, cfg Config, now time.Time) entities.FraudAssessment {
	a := entities.FraudAssessment{
		Source:     entities.AssessmentSourceProvider,
		Thresholds: cfg.Thresholds(),
		CheckedAt:  now.UTC(),
	}
	if resp != nil {
		a.Raw = resp.Raw
		a.Score = resp.Score
		a.Flagged = resp.Flagged
	}

	switch {
	case callErr != nil:
		a.Action = entities.FraudActionError
		a.Error = callErr.Error()
	case resp != nil && resp.ErrorMessage != "":
		a.Action = entities.FraudActionError
		a.Error = resp.ErrorMessage
	case resp != nil && resp.Flagged:
		a.Action = entities.FraudActionBlock
	case resp != nil && resp.Score != nil:
		a.Action = ActionForScore(*resp.Score, cfg)
	default:
		a.Action = entities.FraudActionAllow
	}
	return a
}

func ActionForScore(score float64, cfg Config) entities.FraudAction {
	switch {
	case score >= cfg.BlockThreshold:
		return entities.FraudActionBlock
	case score >= cfg.WarnThreshold:
		return entities.FraudActionWarn
	default:
		return entities.FraudActionAllow
	}
}
