// Package client is a typed Go client for the finance-tracker API. It also
// carries the two pieces of flow logic the console runs on top of the raw
// endpoints: a stale-response-guarded calculation session and the investment
// creation form machine.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/satya-aforv/finance-tracker-sub001/finance"
	"github.com/satya-aforv/finance-tracker-sub001/models"
	"github.com/satya-aforv/finance-tracker-sub001/utils"
)

// Client talks to the API. The injected http.Client supplies timeouts;
// zero-value fields fall back to sane defaults.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is a non-2xx response with the server's message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// do issues the request and decodes the envelope, unmarshalling the data
// payload into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) (*utils.Pagination, error) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var envelope struct {
		Data       json.RawMessage   `json:"data"`
		Message    string            `json:"message"`
		Pagination *utils.Pagination `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		if resp.StatusCode >= 400 {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: envelope.Message}
	}
	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return nil, err
		}
	}
	return envelope.Pagination, nil
}

// Login authenticates and stores the access token on the client.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var result struct {
		Token string `json:"token"`
	}
	_, err := c.do(ctx, http.MethodPost, "/admin/login", map[string]string{
		"username": username,
		"password": password,
	}, &result)
	if err != nil {
		return err
	}
	c.Token = result.Token
	return nil
}

// InvestmentFilter narrows ListInvestments. Zero values are omitted.
type InvestmentFilter struct {
	Page       int
	Limit      int
	Search     string
	Status     string
	InvestorID uint
	PlanID     uint
	DateFrom   string // YYYY-MM-DD
	DateTo     string // YYYY-MM-DD
}

func (f InvestmentFilter) query() string {
	q := make([]string, 0, 8)
	add := func(key, val string) {
		if val != "" {
			q = append(q, key+"="+val)
		}
	}
	if f.Page > 0 {
		add("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		add("limit", strconv.Itoa(f.Limit))
	}
	add("search", f.Search)
	add("status", f.Status)
	if f.InvestorID > 0 {
		add("investor_id", strconv.FormatUint(uint64(f.InvestorID), 10))
	}
	if f.PlanID > 0 {
		add("plan_id", strconv.FormatUint(uint64(f.PlanID), 10))
	}
	add("date_from", f.DateFrom)
	add("date_to", f.DateTo)
	if len(q) == 0 {
		return ""
	}
	return "?" + strings.Join(q, "&")
}

func (c *Client) ListInvestments(ctx context.Context, filter InvestmentFilter) ([]models.Investment, *utils.Pagination, error) {
	var investments []models.Investment
	pagination, err := c.do(ctx, http.MethodGet, "/investments"+filter.query(), nil, &investments)
	return investments, pagination, err
}

func (c *Client) GetInvestment(ctx context.Context, id uint) (*models.Investment, error) {
	var investment models.Investment
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/investments/%d", id), nil, &investment); err != nil {
		return nil, err
	}
	return &investment, nil
}

// CreateInvestment submits a new investment for an investor on a plan.
func (c *Client) CreateInvestment(ctx context.Context, investorID, planID uint, principal float64, notes string) (*models.Investment, error) {
	var investment models.Investment
	_, err := c.do(ctx, http.MethodPost, "/investments", map[string]interface{}{
		"investor_id":      investorID,
		"plan_id":          planID,
		"principal_amount": principal,
		"notes":            notes,
	}, &investment)
	if err != nil {
		return nil, err
	}
	return &investment, nil
}

// CalculateReturns asks the server for a calculation against a persisted
// plan's terms.
func (c *Client) CalculateReturns(ctx context.Context, planID uint, principal float64) (*finance.CalculationResult, error) {
	var result finance.CalculationResult
	_, err := c.do(ctx, http.MethodPost, "/investments/calculate", map[string]interface{}{
		"plan_id":          planID,
		"principal_amount": principal,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CalculateDraftReturns calculates with explicit terms for a plan that has
// no server-side identity yet.
func (c *Client) CalculateDraftReturns(ctx context.Context, principal, rate float64, interestType string, tenureMonths int) (*finance.CalculationResult, error) {
	var result finance.CalculationResult
	_, err := c.do(ctx, http.MethodPost, "/investments/calculate", map[string]interface{}{
		"principal_amount": principal,
		"interest_rate":    rate,
		"interest_type":    interestType,
		"tenure_months":    tenureMonths,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CalculatePlanReturns calculates against a persisted plan's terms.
func (c *Client) CalculatePlanReturns(ctx context.Context, planID uint, principal float64) (*finance.CalculationResult, error) {
	var result finance.CalculationResult
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/plans/%d/calculate", planID), map[string]interface{}{
		"principal_amount": principal,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListActivePlans(ctx context.Context) ([]models.Plan, error) {
	var plans []models.Plan
	if _, err := c.do(ctx, http.MethodGet, "/plans/active", nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (c *Client) GetInvestor(ctx context.Context, id uint) (*models.Investor, error) {
	var result struct {
		Investor models.Investor `json:"investor"`
	}
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/investors/%d", id), nil, &result); err != nil {
		return nil, err
	}
	return &result.Investor, nil
}

// ScheduleView is the combined schedule response.
type ScheduleView struct {
	Investment models.Investment       `json:"investment"`
	Schedule   []models.PaymentEntry   `json:"schedule"`
	Progress   finance.ProgressSummary `json:"progress"`
}

func (c *Client) GetSchedule(ctx context.Context, investmentID uint) (*ScheduleView, error) {
	var view ScheduleView
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/investments/%d/schedule", investmentID), nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *Client) ListTimeline(ctx context.Context, investmentID uint) ([]models.TimelineEntry, error) {
	var entries []models.TimelineEntry
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/investments/%d/timeline", investmentID), nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) AddRemark(ctx context.Context, investmentID uint, body string, parentID *uint) (*models.Remark, error) {
	var remark models.Remark
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/investments/%d/remarks", investmentID), map[string]interface{}{
		"body":      body,
		"parent_id": parentID,
	}, &remark)
	if err != nil {
		return nil, err
	}
	return &remark, nil
}
