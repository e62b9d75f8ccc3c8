package delivery

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

	"github.com/google/uuid"
)

// DefaultPostmarkBaseURL is the Postmark REST API base.
const DefaultPostmarkBaseURL = "https://api.postmarkapp.com"

// Sender delivers generated emails through Postmark with tracking
// attached.
type Sender struct {
	apiKey    string
	fromEmail string
	baseURL   string
	client    *http.Client

	// tokens and trackingBaseURL enable signed open/click/unsubscribe
	// tracking; both nil/empty disables it.
	tokens          *TokenService
	trackingBaseURL string
}

// SenderOption adjusts a Sender.
type SenderOption func(*Sender)

// WithTracking enables signed tracking: the pixel, rewritten links, and
// the unsubscribe footer all point at trackingBaseURL.
func WithTracking(tokens *TokenService, trackingBaseURL string) SenderOption {
	return func(s *Sender) {
		s.tokens = tokens
		s.trackingBaseURL = strings.TrimRight(trackingBaseURL, "/")
	}
}

// NewSender builds a Postmark sender. The server token comes from the
// POSTMARK_API_KEY environment variable at the call site; it is never
// logged.
func NewSender(apiKey, fromEmail string, opts ...SenderOption) (*Sender, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("postmark api key is empty")
	}
	if strings.TrimSpace(fromEmail) == "" {
		return nil, fmt.Errorf("from address is empty")
	}

	s := &Sender{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		baseURL:   DefaultPostmarkBaseURL,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SendRequest describes one outgoing email.
type SendRequest struct {
	ToEmail    string
	ToName     string
	SenderName string
	Subject    string
	TextBody   string
	HTMLBody   string

	// CompanyName is carried in Postmark metadata for analytics.
	CompanyName string

	TrackOpens bool
	TrackLinks bool
}

// SendResult reports a successful delivery.
type SendResult struct {
	MessageID         string `json:"message_id"`
	PostmarkMessageID string `json:"postmark_message_id"`
	To                string `json:"to"`
	SubmittedAt       string `json:"submitted_at"`
}

// postmarkPayload mirrors Postmark's send-email request body.
type postmarkPayload struct {
	From          string            `json:"From"`
	To            string            `json:"To"`
	Subject       string            `json:"Subject"`
	HTMLBody      string            `json:"HtmlBody,omitempty"`
	TextBody      string            `json:"TextBody,omitempty"`
	MessageStream string            `json:"MessageStream"`
	TrackOpens    bool              `json:"TrackOpens"`
	TrackLinks    string            `json:"TrackLinks"`
	Metadata      map[string]string `json:"Metadata,omitempty"`
	Headers       []postmarkHeader  `json:"Headers,omitempty"`
}

type postmarkHeader struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}

type postmarkResponse struct {
	MessageID   string `json:"MessageID"`
	To          string `json:"To"`
	SubmittedAt string `json:"SubmittedAt"`
	ErrorCode   int    `json:"ErrorCode"`
	Message     string `json:"Message"`
}

// Send delivers one email. A fresh message ID is minted for tracking and
// returned alongside Postmark's own message ID.
func (s *Sender) Send(ctx context.Context, req SendRequest) (*SendResult, error) {
	if strings.TrimSpace(req.ToEmail) == "" {
		return nil, fmt.Errorf("recipient address is empty")
	}
	if strings.TrimSpace(req.Subject) == "" {
		return nil, fmt.Errorf("subject is empty")
	}
	if strings.TrimSpace(req.TextBody) == "" && strings.TrimSpace(req.HTMLBody) == "" {
		return nil, fmt.Errorf("email body is empty")
	}

	messageID := uuid.New().String()

	htmlBody := req.HTMLBody
	if htmlBody == "" {
		htmlBody = textToHTML(req.TextBody)
	}
	textBody := req.TextBody

	if s.tokens != nil && s.trackingBaseURL != "" {
		var err error
		htmlBody, err = s.instrumentHTML(htmlBody, messageID, req.ToEmail)
		if err != nil {
			return nil, err
		}
		textBody, err = s.appendTextUnsubscribe(textBody, messageID, req.ToEmail)
		if err != nil {
			return nil, err
		}
	}

	trackLinks := "None"
	if req.TrackLinks {
		trackLinks = "HtmlAndText"
	}

	from := s.fromEmail
	if req.SenderName != "" {
		from = fmt.Sprintf("%s <%s>", req.SenderName, s.fromEmail)
	}
	to := req.ToEmail
	if req.ToName != "" {
		to = fmt.Sprintf("%s <%s>", req.ToName, req.ToEmail)
	}

	payload := postmarkPayload{
		From:          from,
		To:            to,
		Subject:       req.Subject,
		HTMLBody:      htmlBody,
		TextBody:      textBody,
		MessageStream: "outbound",
		TrackOpens:    req.TrackOpens,
		TrackLinks:    trackLinks,
		Metadata: map[string]string{
			"message_id":    messageID,
			"prospect_name": req.ToName,
			"company_name":  req.CompanyName,
			"campaign_type": "1to1_outreach",
		},
		Headers: []postmarkHeader{{Name: "X-Email-ID", Value: messageID}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode postmark payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/email", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build postmark request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Postmark-Server-Token", s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("postmark request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var parsed postmarkResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode postmark response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || parsed.ErrorCode != 0 {
		return nil, fmt.Errorf("postmark rejected the message (status %d, code %d): %s",
			resp.StatusCode, parsed.ErrorCode, parsed.Message)
	}

	return &SendResult{
		MessageID:         messageID,
		PostmarkMessageID: parsed.MessageID,
		To:                parsed.To,
		SubmittedAt:       parsed.SubmittedAt,
	}, nil
}

// hrefRe matches absolute links in HTML bodies for click rewriting.
var hrefRe = regexp.MustCompile(`href="(https?://[^"]+)"`)

// instrumentHTML rewrites links through the click endpoint, appends the
// open pixel, and adds the unsubscribe footer.
func (s *Sender) instrumentHTML(html, messageID, recipient string) (string, error) {
	var rewriteErr error
	html = hrefRe.ReplaceAllStringFunc(html, func(match string) string {
		if rewriteErr != nil {
			return match
		}
		target := hrefRe.FindStringSubmatch(match)[1]
		if strings.HasPrefix(target, s.trackingBaseURL+"/track/") {
			return match
		}
		token, err := s.tokens.GenerateToken(messageID, recipient, EventClick, target)
		if err != nil {
			rewriteErr = err
			return match
		}
		return fmt.Sprintf(`href="%s/track/click/%s"`, s.trackingBaseURL, token)
	})
	if rewriteErr != nil {
		return "", fmt.Errorf("failed to sign click token: %w", rewriteErr)
	}

	openToken, err := s.tokens.GenerateToken(messageID, recipient, EventOpen, "")
	if err != nil {
		return "", fmt.Errorf("failed to sign open token: %w", err)
	}
	unsubToken, err := s.tokens.GenerateToken(messageID, recipient, EventUnsubscribe, "")
	if err != nil {
		return "", fmt.Errorf("failed to sign unsubscribe token: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(html)
	fmt.Fprintf(&sb, `<img src="%s/track/open/%s" width="1" height="1" alt="" style="display:none"/>`,
		s.trackingBaseURL, openToken)
	fmt.Fprintf(&sb, `<p style="font-size:11px;color:#999"><a href="%s/track/unsubscribe/%s">Unsubscribe</a></p>`,
		s.trackingBaseURL, unsubToken)
	return sb.String(), nil
}

// appendTextUnsubscribe adds the unsubscribe link to the plain-text body.
func (s *Sender) appendTextUnsubscribe(text, messageID, recipient string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	token, err := s.tokens.GenerateToken(messageID, recipient, EventUnsubscribe, "")
	if err != nil {
		return "", fmt.Errorf("failed to sign unsubscribe token: %w", err)
	}
	return fmt.Sprintf("%s\n\n--\nUnsubscribe: %s/track/unsubscribe/%s", text, s.trackingBaseURL, token), nil
}

// textToHTML renders a plain-text body as minimal HTML paragraphs.
func textToHTML(text string) string {
	var sb strings.Builder
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		sb.WriteString("<p>")
		sb.WriteString(strings.ReplaceAll(htmlEscape(para), "\n", "<br/>"))
		sb.WriteString("</p>\n")
	}
	return sb.String()
}

func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
