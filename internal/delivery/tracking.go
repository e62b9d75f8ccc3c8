// Package delivery sends generated emails through Postmark and attaches
// signed open/click/unsubscribe tracking.
package delivery

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shegge-stack/EmailGenerator/internal/config"
)

// Event types carried inside tracking tokens.
const (
	EventOpen        = "open"
	EventClick       = "click"
	EventUnsubscribe = "unsubscribe"
)

// TrackingClaims is the payload of a signed tracking token: which
// message, which recipient (hashed, never the address itself), and which
// event the token represents.
type TrackingClaims struct {
	MessageID     string `json:"message_id"`
	RecipientHash string `json:"recipient_hash"`
	Event         string `json:"event"`
	TargetURL     string `json:"target_url,omitempty"`
	jwt.RegisteredClaims
}

// TokenService signs and validates tracking tokens.
type TokenService struct {
	config *config.TrackingConfig
}

// NewTokenService creates a token service with the given configuration.
func NewTokenService(cfg *config.TrackingConfig) *TokenService {
	return &TokenService{config: cfg}
}

// HashRecipient returns the hex SHA-256 of a lowercased recipient
// address. Tokens and stored events carry the hash, not the address.
func HashRecipient(email string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])
}

// GenerateToken signs a tracking token for one message/recipient/event.
// targetURL is only set for click tokens and carries the original link.
func (s *TokenService) GenerateToken(messageID, recipientEmail, event, targetURL string) (string, error) {
	switch event {
	case EventOpen, EventClick, EventUnsubscribe:
	default:
		return "", fmt.Errorf("unknown tracking event %q", event)
	}

	now := time.Now()
	expiresAt := now.Add(time.Duration(s.config.ExpirationHours) * time.Hour)

	claims := &TrackingClaims{
		MessageID:     messageID,
		RecipientHash: HashRecipient(recipientEmail),
		Event:         event,
		TargetURL:     targetURL,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a tracking token and returns its claims.
func (s *TokenService) ValidateToken(tokenString string) (*TrackingClaims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	claims := &TrackingClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrSignatureInvalid) {
			return nil, fmt.Errorf("invalid token signature: %w", err)
		}
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("token expired: %w", err)
		}
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, fmt.Errorf("malformed token: %w", err)
		}
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}

	return claims, nil
}
