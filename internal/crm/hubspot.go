// Package crm syncs prospects and generation results with HubSpot.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shegge-stack/EmailGenerator/internal/types"
)

// DefaultHubSpotBaseURL is the HubSpot REST API base.
const DefaultHubSpotBaseURL = "https://api.hubapi.com"

const (
	maxRetries   = 5
	retryBackoff = 2 * time.Second
)

// Client is a thin HubSpot client. The private-app token comes from the
// HUBSPOT_PRIVATE_APP_TOKEN environment variable at the call site.
type Client struct {
	token   string
	baseURL string
	client  *http.Client

	// sleep is swapped out in tests to avoid real backoff waits.
	sleep func(time.Duration)
}

// NewClient builds a HubSpot client.
func NewClient(token string) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("hubspot token is empty")
	}
	return &Client{
		token:   token,
		baseURL: DefaultHubSpotBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		sleep:   time.Sleep,
	}, nil
}

// Contact is a HubSpot contact mapped onto a prospect record. The
// prospect carries only what HubSpot knows; sender fields are filled by
// the caller before generation.
type Contact struct {
	ID       string
	Prospect types.Prospect
}

// contactProperties are the HubSpot contact properties we pull.
var contactProperties = []string{
	"firstname", "lastname", "email", "jobtitle",
	"company", "website", "industry", "linkedin_url",
}

type contactsPage struct {
	Results []struct {
		ID         string            `json:"id"`
		Properties map[string]string `json:"properties"`
	} `json:"results"`
	Paging struct {
		Next struct {
			After string `json:"after"`
		} `json:"next"`
	} `json:"paging"`
}

// ListContacts pulls up to limit contacts, following pagination.
func (c *Client) ListContacts(ctx context.Context, limit int) ([]Contact, error) {
	if limit <= 0 {
		limit = 100
	}

	var contacts []Contact
	after := ""
	for len(contacts) < limit {
		pageSize := limit - len(contacts)
		if pageSize > 100 {
			pageSize = 100
		}
		url := fmt.Sprintf("%s/crm/v3/objects/contacts?limit=%d&properties=%s",
			c.baseURL, pageSize, strings.Join(contactProperties, ","))
		if after != "" {
			url += "&after=" + after
		}

		var page contactsPage
		if err := c.doJSON(ctx, http.MethodGet, url, nil, &page); err != nil {
			return nil, fmt.Errorf("failed to list contacts: %w", err)
		}

		for _, r := range page.Results {
			p := r.Properties
			contacts = append(contacts, Contact{
				ID: r.ID,
				Prospect: types.Prospect{
					FirstName:      p["firstname"],
					LastName:       p["lastname"],
					CompanyName:    p["company"],
					CompanyWebsite: p["website"],
					LinkedInURL:    p["linkedin_url"],
					Industry:       p["industry"],
					Title:          p["jobtitle"],
				},
			})
		}

		after = page.Paging.Next.After
		if after == "" || len(page.Results) == 0 {
			break
		}
	}

	return contacts, nil
}

// noteToContactAssociation is HubSpot's association type for a note
// attached to a contact.
const noteToContactAssociation = 202

// LogGenerationNote records a generation outcome as a note on the
// contact's timeline.
func (c *Client) LogGenerationNote(ctx context.Context, contactID, note string) error {
	if contactID == "" {
		return fmt.Errorf("contact id is empty")
	}

	payload := map[string]interface{}{
		"properties": map[string]string{
			"hs_note_body": note,
			"hs_timestamp": time.Now().UTC().Format(time.RFC3339),
		},
		"associations": []map[string]interface{}{{
			"to": map[string]string{"id": contactID},
			"types": []map[string]interface{}{{
				"associationCategory": "HUBSPOT_DEFINED",
				"associationTypeId":   noteToContactAssociation,
			}},
		}},
	}

	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/crm/v3/objects/notes", payload, nil); err != nil {
		return fmt.Errorf("failed to log note for contact %s: %w", contactID, err)
	}
	return nil
}

// SequenceStep is one step of a prospecting sequence pushed to HubSpot.
type sequenceStep struct {
	Type    string `json:"type"`
	Subject string `json:"subject"`
	Content string `json:"content"`
	Delay   int    `json:"delay"`
}

// CreateSequence pushes a generated email sequence as a HubSpot
// prospecting sequence and returns its id. Steps are spaced three days
// apart.
func (c *Client) CreateSequence(ctx context.Context, name string, steps []types.SequenceStep) (string, error) {
	if len(steps) == 0 {
		return "", fmt.Errorf("sequence has no steps")
	}

	payload := struct {
		Name  string         `json:"name"`
		Steps []sequenceStep `json:"steps"`
	}{Name: name}
	for i, step := range steps {
		payload.Steps = append(payload.Steps, sequenceStep{
			Type:    "EMAIL",
			Subject: step.Subject,
			Content: step.Body,
			Delay:   i * 3,
		})
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/crm/v3/prospecting/sequences", payload, &created); err != nil {
		return "", fmt.Errorf("failed to create sequence: %w", err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("hubspot returned no sequence id")
	}
	return created.ID, nil
}

// EnrollContact enrolls a contact in a prospecting sequence.
func (c *Client) EnrollContact(ctx context.Context, contactID, sequenceID string) error {
	payload := map[string]string{
		"contactId":  contactID,
		"sequenceId": sequenceID,
	}
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/crm/v3/prospecting/enrollments", payload, nil); err != nil {
		return fmt.Errorf("failed to enroll contact %s: %w", contactID, err)
	}
	return nil
}

// retryableStatus reports whether a response status warrants a retry.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// doJSON issues a request with bearer auth, retrying on 429 and 5xx with
// exponential backoff, and decodes the response into out when non-nil.
func (c *Client) doJSON(ctx context.Context, method, url string, payload, out interface{}) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	var resp *http.Response
	for attempt := 1; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Content-Type", "application/json")

		resp, err = c.client.Do(req)
		if err != nil {
			return fmt.Errorf("hubspot request failed: %w", err)
		}

		if retryableStatus(resp.StatusCode) && attempt < maxRetries {
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
			_ = resp.Body.Close()
			c.sleep(retryBackoff << (attempt - 1))
			continue
		}
		break
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("hubspot returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	if out != nil {
		if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(out); err != nil {
			return fmt.Errorf("failed to decode hubspot response: %w", err)
		}
	}
	return nil
}
