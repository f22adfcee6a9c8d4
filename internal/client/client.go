package client

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/codetroops/pos-lebanon/internal/currency"
	"github.com/codetroops/pos-lebanon/internal/receipt"
)

// Client wraps HTTP client for POS API calls
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	Verbose    bool
}

// NewClient creates a new API client.
// token is either "login:password" (sent as Basic) or a bearer token.
func NewClient(baseURL, token string, timeout time.Duration, verbose bool) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		Verbose: verbose,
	}
}

// AuthorizationHeader builds the Authorization header value for a token
func AuthorizationHeader(token string) string {
	if token == "" {
		return ""
	}
	if strings.Contains(token, ":") {
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(token))
	}
	return "Bearer " + token
}

// APIError is a non-2xx response decoded from the server error envelope
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// Config is a POS configuration as returned by the server
type Config struct {
	ID               uint    `json:"id"`
	Name             string  `json:"name"`
	LBPUSDRate       float64 `json:"lbp_usd_rate"`
	DisplayLBPTotal  bool    `json:"display_lbp_total"`
	PaymentMethodIDs []uint  `json:"payment_method_ids"`
}

// CurrencyUpdate is a partial update of a config's currency settings
type CurrencyUpdate struct {
	LBPUSDRate      *float64 `json:"lbp_usd_rate,omitempty"`
	DisplayLBPTotal *bool    `json:"display_lbp_total,omitempty"`
}

// CashierAuth is the outcome of a cashier authentication.
// EmployeeID is a number or false.
type CashierAuth struct {
	Success    bool   `json:"success"`
	UserID     uint   `json:"user_id,omitempty"`
	EmployeeID any    `json:"employee_id,omitempty"`
	UserName   string `json:"user_name,omitempty"`
	Message    string `json:"message,omitempty"`
}

// ShareResult is a WhatsApp share link for a receipt
type ShareResult struct {
	URL     string `json:"url"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// ProvisionReport summarizes a payment method provisioning run
type ProvisionReport struct {
	MethodID   uint   `json:"payment_method_id"`
	MethodName string `json:"payment_method_name"`
	Created    bool   `json:"created"`
	Linked     []uint `json:"linked_config_ids"`
	Skipped    []uint `json:"skipped_config_ids"`
}

// Whoami is the identity the server resolved from the credentials
type Whoami struct {
	Username string `json:"username"`
	UserID   uint   `json:"user_id,omitempty"`
}

// doRequest executes an HTTP request with authentication
func (c *Client) doRequest(method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	target := c.BaseURL + path
	req, err := http.NewRequest(method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if header := AuthorizationHeader(c.Token); header != "" {
		req.Header.Set("Authorization", header)
	}

	if c.Verbose {
		fmt.Fprintf(os.Stderr, "[DEBUG] %s %s\n", method, target)
	}

	return c.HTTPClient.Do(req)
}

// Get executes a GET request
func (c *Client) Get(path string) (*http.Response, error) {
	return c.doRequest(http.MethodGet, path, nil)
}

// Post executes a POST request
func (c *Client) Post(path string, body interface{}) (*http.Response, error) {
	return c.doRequest(http.MethodPost, path, body)
}

// Put executes a PUT request
func (c *Client) Put(path string, body interface{}) (*http.Response, error) {
	return c.doRequest(http.MethodPut, path, body)
}

// call executes a request and decodes a 2xx JSON body into out
func (c *Client) call(method, path string, body, out interface{}) error {
	resp, err := c.doRequest(method, path, body)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(data, &envelope) == nil {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func configPath(id uint, suffix string) string {
	return "/api/v1/pos/configs/" + strconv.FormatUint(uint64(id), 10) + suffix
}

// Whoami returns the identity behind the client credentials
func (c *Client) Whoami() (*Whoami, error) {
	var out Whoami
	if err := c.call(http.MethodGet, "/api/v1/whoami", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListConfigs lists every POS configuration
func (c *Client) ListConfigs() ([]Config, error) {
	var out []Config
	if err := c.call(http.MethodGet, "/api/v1/pos/configs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetConfig fetches one POS configuration
func (c *Client) GetConfig(id uint) (*Config, error) {
	var out Config
	if err := c.call(http.MethodGet, configPath(id, ""), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PosData fetches the fields a POS session loads for a configuration
func (c *Client) PosData(id uint) (map[string]any, error) {
	var out map[string]any
	if err := c.call(http.MethodGet, configPath(id, "/data"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateCurrency applies a partial currency settings update
func (c *Client) UpdateCurrency(id uint, update CurrencyUpdate) (*Config, error) {
	var out Config
	if err := c.call(http.MethodPut, configPath(id, "/currency"), update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Convert converts a USD amount with a configuration's rate
func (c *Client) Convert(id uint, amountUSD float64) (*currency.Conversion, error) {
	query := url.Values{"amount": {strconv.FormatFloat(amountUSD, 'f', -1, 64)}}
	var out currency.Conversion
	if err := c.call(http.MethodGet, configPath(id, "/convert?"+query.Encode()), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AuthenticateCashier checks cashier credentials against a POS configuration
func (c *Client) AuthenticateCashier(id uint, username, password string) (*CashierAuth, error) {
	body := map[string]string{"username": username, "password": password}
	var out CashierAuth
	if err := c.call(http.MethodPost, configPath(id, "/authenticate"), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ShareReceipt builds a WhatsApp share link for a receipt
func (c *Client) ShareReceipt(id uint, phone string, r receipt.Receipt) (*ShareResult, error) {
	body := map[string]any{"phone": phone, "receipt": r}
	var out ShareResult
	if err := c.call(http.MethodPost, configPath(id, "/receipt/whatsapp"), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Provision runs the LBP payment method provisioning on the server
func (c *Client) Provision() (*ProvisionReport, error) {
	var out ProvisionReport
	if err := c.call(http.MethodPost, "/api/v1/admin/provision", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
