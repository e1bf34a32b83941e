// Package telegram is the boundary to the Telegram Mini App host: it parses
// the init data the host hands to the web app and verifies its signature.
package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNotInHost        = errors.New("telegram: not running inside a mini app host")
	ErrMissingHash      = errors.New("telegram: init data has no hash")
	ErrInvalidSignature = errors.New("telegram: init data signature mismatch")
	ErrExpired          = errors.New("telegram: init data expired")
)

// WebAppUser is the user object embedded in init data.
type WebAppUser struct {
	ID              int64  `json:"id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name,omitempty"`
	Username        string `json:"username,omitempty"`
	LanguageCode    string `json:"language_code,omitempty"`
	IsPremium       bool   `json:"is_premium,omitempty"`
	PhotoURL        string `json:"photo_url,omitempty"`
	AllowsWriteToPM bool   `json:"allows_write_to_pm,omitempty"`
}

// InitData is the parsed form of the host's initData query string.
type InitData struct {
	Raw        string
	QueryID    string
	User       *WebAppUser
	AuthDate   time.Time
	StartParam string
	Hash       string

	values url.Values
}

// ParseInitData decodes raw init data. It does not check the signature.
func ParseInitData(raw string) (*InitData, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrNotInHost
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("telegram: malformed init data: %w", err)
	}

	data := &InitData{
		Raw:        raw,
		QueryID:    values.Get("query_id"),
		StartParam: values.Get("start_param"),
		Hash:       values.Get("hash"),
		values:     values,
	}
	if u := values.Get("user"); u != "" {
		var user WebAppUser
		if err := json.Unmarshal([]byte(u), &user); err != nil {
			return nil, fmt.Errorf("telegram: malformed user in init data: %w", err)
		}
		data.User = &user
	}
	if ad := values.Get("auth_date"); ad != "" {
		secs, err := strconv.ParseInt(ad, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("telegram: malformed auth_date: %w", err)
		}
		data.AuthDate = time.Unix(secs, 0)
	}
	return data, nil
}

// Verify checks the init data hash against the bot token and, when maxAge is
// positive, that auth_date is recent enough.
func (d *InitData) Verify(botToken string, maxAge time.Duration, now time.Time) error {
	if d.Hash == "" {
		return ErrMissingHash
	}
	expected := signature(d.values, botToken)
	got, err := hex.DecodeString(d.Hash)
	if err != nil || !hmac.Equal(expected, got) {
		return ErrInvalidSignature
	}
	if maxAge > 0 && now.Sub(d.AuthDate) > maxAge {
		return ErrExpired
	}
	return nil
}

// SignInitData appends a valid hash to values and returns the encoded init
// data. Local tooling uses it to impersonate the host.
func SignInitData(values url.Values, botToken string) string {
	signed := url.Values{}
	for k, v := range values {
		if k != "hash" {
			signed[k] = v
		}
	}
	signed.Set("hash", hex.EncodeToString(signature(signed, botToken)))
	return signed.Encode()
}

func signature(values url.Values, botToken string) []byte {
	pairs := make([]string, 0, len(values))
	for k := range values {
		if k == "hash" {
			continue
		}
		pairs = append(pairs, k+"="+values.Get(k))
	}
	sort.Strings(pairs)

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))

	h := hmac.New(sha256.New, secret.Sum(nil))
	h.Write([]byte(strings.Join(pairs, "\n")))
	return h.Sum(nil)
}
