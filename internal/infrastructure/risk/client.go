// Package risk is the HTTP client for the external fraud-scoring provider.
package risk

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"time"

	appconfig "policy_checkout/internal/config"
	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/domain/fraud"
	"policy_checkout/internal/usecase/interfaces"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

const apiKeyHeader = "X-Api-Key"

var ErrFeedbackNotConfigured = errors.New("risk feedback endpoint not configured")

// Client posts form-encoded screening requests. Calls go through a circuit
// breaker; while it is open Score fails fast with fraud.ErrProviderUnavailable.
type Client struct {
	http             *resty.Client
	breaker          *gobreaker.CircuitBreaker
	endpoint         string
	feedbackEndpoint string
	log              *logrus.Entry
}

var _ interfaces.IRiskProvider = (*Client)(nil)

func NewClient(cfg appconfig.FraudConfig) *Client {
	log := logrus.WithField("component", "risk")

	httpClient := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	if cfg.APIKey != "" {
		httpClient.SetHeader(apiKeyHeader, cfg.APIKey)
	}

	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "risk-provider",
		MaxRequests: 1,
		Timeout:     cfg.BreakerOpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{"breaker": name, "from": from.String(), "to": to.String()}).Warn("[risk] circuit breaker state changed")
		},
	})

	if cfg.Endpoint == "" {
		log.Warn("[risk] no endpoint configured, every screening reports the provider unavailable")
	}
	return &Client{
		http:             httpClient,
		breaker:          breaker,
		endpoint:         cfg.Endpoint,
		feedbackEndpoint: cfg.FeedbackEndpoint,
		log:              log,
	}
}

// Score fails with fraud.ErrProviderUnavailable when no endpoint is configured,
// leaving the outcome to the fail-open setting.
func (c *Client) Score(ctx context.Context, req entities.ScreeningRequest) (*fraud.ProviderResponse, error) {
	if c.endpoint == "" {
		return nil, fmt.Errorf("%w: no endpoint configured", fraud.ErrProviderUnavailable)
	}

	start := time.Now()
	out, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.http.R().
			SetContext(ctx).
			SetFormData(screeningForm(req)).
			Post(c.endpoint)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("risk provider returned status %d", resp.StatusCode())
		}
		return resp.Body(), nil
	})

	log := c.log.WithFields(logrus.Fields{"quote_id": req.OrderID, "elapsed_ms": time.Since(start).Milliseconds()})
	if err != nil {
		log.WithError(err).Warn("[risk] score request failed")
		return nil, fmt.Errorf("%w: %v", fraud.ErrProviderUnavailable, err)
	}

	parsed, err := fraud.ParseProviderResponse(out.([]byte))
	if err != nil {
		log.WithError(err).Warn("[risk] malformed score response")
		return nil, err
	}
	log.Info("[risk] score received")
	return parsed, nil
}

// Feedback reports a reviewer decision. Callers treat failures as non-fatal.
func (c *Client) Feedback(ctx context.Context, req entities.FeedbackRequest) error {
	if c.feedbackEndpoint == "" {
		return ErrFeedbackNotConfigured
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"order_id": req.OrderID,
			"email":    req.Email,
			"decision": string(req.Decision),
			"actor":    req.Actor,
			"note":     req.Note,
		}).
		Post(c.feedbackEndpoint)
	if err != nil {
		return fmt.Errorf("risk feedback: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("risk feedback: status %d", resp.StatusCode())
	}
	return nil
}

func screeningForm(req entities.ScreeningRequest) map[string]string {
	cust := req.Customer
	form := map[string]string{
		"order_id":      req.OrderID,
		"first_name":    cust.FirstName,
		"last_name":     cust.LastName,
		"email":         cust.Email,
		"phone":         cust.Phone,
		"dob":           cust.DateOfBirth,
		"address_line1": cust.Address.Line1,
		"address_line2": cust.Address.Line2,
		"city":          cust.Address.City,
		"postcode":      cust.Address.Postcode,
		"country":       cust.Address.Country,
		"amount":        req.Amount.StringFixed(2),
		"currency":      req.Currency,
		"user_agent":    req.UserAgent,
	}
	if ip := PublicIP(req.ClientIP); ip != "" {
		form["ip"] = ip
	}
	for k, v := range form {
		if strings.TrimSpace(v) == "" {
			delete(form, k)
		}
	}
	return form
}

// PublicIP returns the address when it is routable, otherwise "".
// Private, loopback, link-local and unspecified addresses carry no signal.
func PublicIP(raw string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	addr = addr.Unmap()
	if addr.IsPrivate() || addr.IsLoopback() || addr.IsLinkLocalUnicast() || addr.IsUnspecified() {
		return ""
	}
	return addr.String()
}
