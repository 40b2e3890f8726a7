package fraud

import "testing"

func TestParseProviderResponse(t *testing.T) {
	cases := []struct {
		name      string
		body      string
		wantScore *float64
		flagged   bool
		errMarker bool
	}{
		{"numeric score", `{"score": 42.5}`, score(42.5), false, false},
		{"string score", `{"risk_score": "81"}`, score(81), false, false},
		{"yes flag", `{"score": 3, "fraud": "Y"}`, score(3), true, false},
		{"bool flag", `{"is_fraud": true}`, nil, true, false},
		{"false flag", `{"flagged": false, "score": "n/a"}`, nil, false, false},
		{"error string", `{"error": "invalid api key"}`, nil, false, true},
		{"empty error ignored", `{"error": "", "score": 10}`, score(10), false, false},
		{"error object", `{"error": {"message": "rate limited"}}`, nil, false, true},
		{"status error", `{"status": "error"}`, nil, false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := ParseProviderResponse([]byte(tc.body))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			switch {
			case tc.wantScore == nil && resp.Score != nil:
				t.Fatalf("expected no score, got %v", *resp.Score)
			case tc.wantScore != nil && (resp.Score == nil || *resp.Score != *tc.wantScore):
				t.Fatalf("expected score %v, got %v", *tc.wantScore, resp.Score)
			}
			if resp.Flagged != tc.flagged {
				t.Fatalf("expected flagged=%v", tc.flagged)
			}
			if (resp.ErrorMessage != "") != tc.errMarker {
				t.Fatalf("unexpected error marker %q", resp.ErrorMessage)
			}
			if string(resp.Raw) != tc.body {
				t.Fatalf("raw payload must be kept verbatim")
			}
		})
	}
}

func TestParseProviderResponse_Malformed(t *testing.T) {
	if _, err := ParseProviderResponse([]byte(`<html>502</html>`)); err == nil {
		t.Fatalf("expected error for non-json body")
	}

	for _, body := range []string{`{"score":"NaN"}`, `{"risk_score":"Inf"}`, `{"fraud_score":"-infinity"}`} {
		t.Run(body, func(t *testing.T) {
			if resp, err := ParseProviderResponse([]byte(body)); err == nil {
				t.Fatalf("expected non-finite score to be rejected, got %+v", resp)
			}
		})
	}
}
