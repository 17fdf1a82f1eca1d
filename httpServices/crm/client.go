package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotConfigured = errors.New("CRM API key or location id is not configured")

// APIError is returned for every failed CRM call. StatusCode is zero when the
// request never produced a response (network failure or timeout).
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("CRM %s %s failed: %s", e.Method, e.Path, e.Message)
	}
	return fmt.Sprintf("CRM %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	locationID string
}

func NewClient(baseURL, apiKey, locationID string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		locationID: locationID,
	}
}

// FindContactByEmail returns nil without error when no contact matches. An empty
// email matches nothing and makes no request.
func (c *Client) FindContactByEmail(ctx context.Context, email string) (*Contact, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, nil
	}

	query := url.Values{}
	query.Set("locationId", c.locationID)
	query.Set("query", email)

	var resp contactsEnvelope
	if err := c.do(ctx, http.MethodGet, "/contacts/", query, nil, &resp); err != nil {
		return nil, err
	}

	for i := range resp.Contacts {
		if strings.EqualFold(resp.Contacts[i].Email, email) {
			return &resp.Contacts[i], nil
		}
	}
	return nil, nil
}

func (c *Client) CreateContact(ctx context.Context, contact Contact) (*Contact, error) {
	if contact.LocationID == "" {
		contact.LocationID = c.locationID
	}

	var resp contactEnvelope
	if err := c.do(ctx, http.MethodPost, "/contacts/", nil, contact, &resp); err != nil {
		return nil, err
	}
	if resp.Contact.ID == "" {
		return nil, &APIError{Method: http.MethodPost, Path: "/contacts/", StatusCode: http.StatusOK, Message: "response did not include a contact id"}
	}
	return &resp.Contact, nil
}

func (c *Client) UpdateContact(ctx context.Context, id string, contact Contact) (*Contact, error) {
	// The update endpoint rejects locationId in the body.
	contact.ID = ""
	contact.LocationID = ""

	var resp contactEnvelope
	if err := c.do(ctx, http.MethodPut, "/contacts/"+url.PathEscape(id), nil, contact, &resp); err != nil {
		return nil, err
	}
	if resp.Contact.ID == "" {
		resp.Contact = contact
		resp.Contact.ID = id
	}
	return &resp.Contact, nil
}

func (c *Client) CreateOpportunity(ctx context.Context, opp Opportunity) (*Opportunity, error) {
	if opp.LocationID == "" {
		opp.LocationID = c.locationID
	}

	var resp opportunityEnvelope
	if err := c.do(ctx, http.MethodPost, "/opportunities/", nil, opp, &resp); err != nil {
		return nil, err
	}
	if resp.Opportunity.ID == "" {
		return nil, &APIError{Method: http.MethodPost, Path: "/opportunities/", StatusCode: http.StatusOK, Message: "response did not include an opportunity id"}
	}
	return &resp.Opportunity, nil
}

func (c *Client) UpdateOpportunity(ctx context.Context, id string, update interface{}) error {
	return c.do(ctx, http.MethodPut, "/opportunities/"+url.PathEscape(id), nil, update, nil)
}

// TriggerWebhook posts payload to an inbound automation hook.
func (c *Client) TriggerWebhook(ctx context.Context, hook string, payload map[string]interface{}) error {
	return c.do(ctx, http.MethodPost, "/hooks/"+url.PathEscape(hook), nil, payload, nil)
}

// GetLocation is used to verify the configured credentials.
func (c *Client) GetLocation(ctx context.Context) (*Location, error) {
	var resp locationEnvelope
	if err := c.do(ctx, http.MethodGet, "/locations/"+url.PathEscape(c.locationID), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Location, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	if c.apiKey == "" || c.locationID == "" {
		return ErrNotConfigured
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		body = bytes.NewBuffer(raw)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-Id", uuid.NewString())
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &APIError{Method: method, Path: path, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Message: err.Error(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Message: remoteMessage(raw, resp.Status)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Message: "invalid JSON response", Err: err}
	}
	return nil
}

// remoteMessage extracts the provider's error message, falling back to the HTTP status text.
func remoteMessage(raw []byte, status string) string {
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err == nil {
		switch {
		case eb.Message != "":
			return eb.Message
		case eb.Msg != "":
			return eb.Msg
		case eb.Error != "":
			return eb.Error
		}
	}
	if text := strings.TrimSpace(string(raw)); text != "" && len(text) <= 500 {
		return text
	}
	return status
}
