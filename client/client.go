// Package client talks to the Spill API on behalf of the Mini App.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"go.uber.org/zap"

	"spill/models"
	"spill/profile"
)

const DefaultTimeout = 10 * time.Second

type Config struct {
	BaseURL  string
	Timeout  time.Duration
	InitData string
}

// Client is the record fetch and submit collaborator of the edit screen.
type Client struct {
	baseURL    string
	initData   string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		initData: cfg.InitData,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

type userEnvelope struct {
	User *models.UserRecord `json:"user"`
}

// Login authenticates with the host init data and returns the caller's
// record, creating it on first login.
func (c *Client) Login(ctx context.Context) (*models.UserRecord, error) {
	return c.send(ctx, http.MethodPost, "/auth/telegram", nil, "")
}

// Me fetches the caller's record.
func (c *Client) Me(ctx context.Context) (*models.UserRecord, error) {
	return c.send(ctx, http.MethodGet, "/auth/me", nil, "")
}

// UpdateMe sends a structured-fields-only update as one JSON object.
func (c *Client) UpdateMe(ctx context.Context, update profile.ValidatedUpdate) (*models.UserRecord, error) {
	payload, err := json.Marshal(update.UserUpdate)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal update: %w", err)
	}
	return c.send(ctx, http.MethodPatch, "/auth/me", bytes.NewReader(payload), "application/json")
}

// UpdateMeWithPhotos sends the update and every photo in a single multipart
// request.
func (c *Client) UpdateMeWithPhotos(ctx context.Context, update profile.ValidatedUpdate, photos []models.Attachment) (*models.UserRecord, error) {
	body, contentType, err := EncodeMultipart(update.UserUpdate, photos)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, http.MethodPatch, "/auth/me", body, contentType)
}

// EncodeMultipart lays out an update as flat form fields plus photo parts.
// Each present field's value is its JSON encoding, so lists and maps travel
// as JSON text and null stays distinguishable from the string "null".
func EncodeMultipart(update models.UserUpdate, photos []models.Attachment) (*bytes.Buffer, string, error) {
	raw, err := json.Marshal(update)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal update: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, "", fmt.Errorf("failed to split update fields: %w", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, name := range update.Fields() {
		if err := w.WriteField(name, string(fields[name])); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", name, err)
		}
	}
	for _, p := range photos {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="%s"; filename="%s"`, models.PhotosField, quoteEscaper.Replace(p.Name)))
		h.Set("Content-Type", p.ContentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create part for %s: %w", p.Name, err)
		}
		if _, err := part.Write(p.Data); err != nil {
			return nil, "", fmt.Errorf("failed to write %s: %w", p.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string) (*models.UserRecord, error) {
	op := method + " " + path

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.initData != "" {
		req.Header.Set(models.InitDataHeader, c.initData)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("request failed",
			zap.String("op", op),
			zap.Error(err))
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		terr := &TransportError{
			Op:     op,
			Status: resp.StatusCode,
			Detail: parseDetail(respBody),
			Body:   string(respBody),
		}
		c.logger.Error("api returned non-OK status",
			zap.String("op", op),
			zap.Int("status_code", resp.StatusCode),
			zap.String("detail", terr.Detail))
		return nil, terr
	}

	var env userEnvelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, &TransportError{Op: op, Status: resp.StatusCode, Body: string(respBody), Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if env.User == nil {
		return nil, &TransportError{Op: op, Status: resp.StatusCode, Err: ErrNoData}
	}

	c.logger.Debug("api call succeeded",
		zap.String("op", op),
		zap.Int64("user_id", env.User.ID))
	return env.User, nil
}
