// Package enrich fills in prospect details from compliant sources: the
// public structure of a LinkedIn profile URL, the Apollo.io people-match
// API, and the prospect company's own website. LinkedIn itself is never
// scraped.
package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/shegge-stack/EmailGenerator/internal/types"
)

// DefaultApolloBaseURL is the Apollo.io REST API base.
const DefaultApolloBaseURL = "https://api.apollo.io/v1"

// profileRe validates a LinkedIn public profile URL and captures the slug.
var profileRe = regexp.MustCompile(`(?i)^https?://(?:www\.)?linkedin\.com/in/([^/?#]+)`)

// Enrichment holds prospect hints recovered from a profile URL or an
// enrichment API.
type Enrichment struct {
	LinkedInURL    string `json:"linkedin_url"`
	Slug           string `json:"slug"`
	FirstName      string `json:"first_name,omitempty"`
	LastName       string `json:"last_name,omitempty"`
	CompanyName    string `json:"company_name,omitempty"`
	CompanyWebsite string `json:"company_website,omitempty"`
	Title          string `json:"title,omitempty"`
	Industry       string `json:"industry,omitempty"`
	Location       string `json:"location,omitempty"`

	// Source is "url" for structure-only parsing or "apollo" for an API
	// match.
	Source string `json:"source"`
}

// NormalizeProfileURL validates a LinkedIn profile URL and returns its
// canonical form plus the profile slug. A bare "linkedin.com/in/x" is
// accepted and upgraded to https.
func NormalizeProfileURL(raw string) (urlStr, slug string, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", fmt.Errorf("linkedin url is empty")
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	m := profileRe.FindStringSubmatch(raw)
	if m == nil {
		return "", "", fmt.Errorf("not a linkedin profile url: %s", raw)
	}
	slug = m[1]
	return "https://www.linkedin.com/in/" + slug, slug, nil
}

// nameFromSlug guesses first/last name from a profile slug like
// "jane-doe-1a2b3c". Segments containing digits are dropped; they are
// LinkedIn's uniqueness suffixes, not name parts.
func nameFromSlug(slug string) (first, last string) {
	var parts []string
	for _, p := range strings.Split(slug, "-") {
		if p == "" || strings.ContainsAny(p, "0123456789") {
			continue
		}
		parts = append(parts, titleCase(p))
	}
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// Enricher resolves prospect hints for LinkedIn profile URLs.
type Enricher struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewEnricher builds an Enricher. With an empty Apollo API key only URL
// structure parsing is available.
func NewEnricher(apolloAPIKey string) *Enricher {
	return &Enricher{
		apiKey:  apolloAPIKey,
		baseURL: DefaultApolloBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// EnrichProfile returns whatever hints can be recovered for a profile
// URL: an Apollo people match when a key is configured, otherwise the
// name guessed from the URL structure alone.
func (e *Enricher) EnrichProfile(ctx context.Context, linkedinURL string) (*Enrichment, error) {
	urlStr, slug, err := NormalizeProfileURL(linkedinURL)
	if err != nil {
		return nil, err
	}

	if e.apiKey == "" {
		first, last := nameFromSlug(slug)
		return &Enrichment{
			LinkedInURL: urlStr,
			Slug:        slug,
			FirstName:   first,
			LastName:    last,
			Source:      "url",
		}, nil
	}

	return e.apolloMatch(ctx, urlStr, slug)
}

// apolloPerson mirrors the subset of Apollo's people-match response we
// consume.
type apolloPerson struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Title        string `json:"title"`
	City         string `json:"city"`
	Organization struct {
		Name       string `json:"name"`
		WebsiteURL string `json:"website_url"`
		Industry   string `json:"industry"`
	} `json:"organization"`
}

func (e *Enricher) apolloMatch(ctx context.Context, profileURL, slug string) (*Enrichment, error) {
	payload, err := json.Marshal(map[string]string{
		"api_key":      e.apiKey,
		"linkedin_url": profileURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode apollo request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/people/match", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build apollo request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("apollo request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("apollo returned status %d", resp.StatusCode)
	}

	var parsed struct {
		Person apolloPerson `json:"person"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode apollo response: %w", err)
	}

	p := parsed.Person
	return &Enrichment{
		LinkedInURL:    profileURL,
		Slug:           slug,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		CompanyName:    p.Organization.Name,
		CompanyWebsite: p.Organization.WebsiteURL,
		Title:          p.Title,
		Industry:       p.Organization.Industry,
		Location:       p.City,
		Source:         "apollo",
	}, nil
}

// ApplyTo copies enrichment hints into empty prospect fields, never
// overwriting values the caller already has.
func (en *Enrichment) ApplyTo(p *types.Prospect) {
	if p.FirstName == "" {
		p.FirstName = en.FirstName
	}
	if p.LastName == "" {
		p.LastName = en.LastName
	}
	if p.CompanyName == "" {
		p.CompanyName = en.CompanyName
	}
	if p.CompanyWebsite == "" {
		p.CompanyWebsite = en.CompanyWebsite
	}
	if p.Title == "" {
		p.Title = en.Title
	}
	if p.Industry == "" {
		p.Industry = en.Industry
	}
	if p.LinkedInURL == "" {
		p.LinkedInURL = en.LinkedInURL
	}
}
