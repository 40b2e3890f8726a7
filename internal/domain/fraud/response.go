package fraud

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	scoreKeys = []string{"score", "risk_score", "fraud_score"}
	flagKeys  = []string{"fraud", "is_fraud", "flagged", "high_risk"}
	errorKeys = []string{"error", "error_message", "errorMessage"}
)

// ParseProviderResponse reads the provider JSON. Scores may be numbers or numeric
// strings, flags may be booleans or yes/true/1 strings.
func ParseProviderResponse(body []byte) (*ProviderResponse, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("malformed risk response: %w", err)
	}

	resp := &ProviderResponse{Raw: json.RawMessage(append([]byte(nil), body...))}
	for _, k := range scoreKeys {
		if raw, ok := fields[k]; ok {
			if score, ok := parseScore(raw); ok {
				if math.IsNaN(score) || math.IsInf(score, 0) {
					return nil, fmt.Errorf("malformed risk response: %s is not a finite number", k)
				}
				resp.Score = &score
				break
			}
		}
	}
	for _, k := range flagKeys {
		if raw, ok := fields[k]; ok && parseFlag(raw) {
			resp.Flagged = true
			break
		}
	}
	for _, k := range errorKeys {
		if raw, ok := fields[k]; ok {
			if msg := parseErrorMarker(raw); msg != "" {
				resp.ErrorMessage = msg
				break
			}
		}
	}
	if raw, ok := fields["status"]; ok && resp.ErrorMessage == "" {
		var status string
		if json.Unmarshal(raw, &status) == nil && strings.EqualFold(status, "error") {
			resp.ErrorMessage = "provider returned error status"
		}
	}
	return resp, nil
}

func parseScore(raw json.RawMessage) (float64, bool) {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return n, err == nil
}

func parseFlag(raw json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n != 0
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1":
		return true
	}
	return false
}

func parseErrorMarker(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		if b {
			return "provider reported an error"
		}
		return ""
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err == nil && len(obj) > 0 {
		if msg, ok := obj["message"].(string); ok && msg != "" {
			return msg
		}
		return "provider reported an error"
	}
	return ""
}
