package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/adityasampath/Imagify-Project/internal/pkg/env"
)

const (
	defaultBaseURL = "https://clipdrop-api.co"
	defaultTimeout = 60 * time.Second

	textToImagePath = "/text-to-image/v1"
)

var (
	// ErrAPIKeyMissing means the server has no synthesis API key configured.
	ErrAPIKeyMissing = errors.New("image generation API key is not configured")
	// ErrAPIKeyInvalid means the synthesis service rejected our credential.
	// The credential itself must never surface to clients.
	ErrAPIKeyInvalid = errors.New("image generation API key was rejected")
	// ErrEmptyImage means the service answered 2xx with no payload.
	ErrEmptyImage = errors.New("empty response from image generation service")
)

// UpstreamError carries a non-2xx answer from the synthesis service.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("image generation service returned status %d", e.StatusCode)
	}
	return e.Message
}

// Client calls the Clipdrop text-to-image API.
type Client struct {
	APIKey  string
	BaseURL string

	HTTPClient *http.Client
}

// NewClientFromEnv builds a client from CLIPDROP_API / CLIPDROP_API_BASE_URL /
// CLIPDROP_TIMEOUT. The key is sanitized because .env files in the wild carry
// stray quotes and line breaks around it.
func NewClientFromEnv() *Client {
	timeout := defaultTimeout
	if raw := strings.TrimSpace(env.GetEnv("CLIPDROP_TIMEOUT", "")); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			timeout = d
		}
	}

	return &Client{
		APIKey:  SanitizeAPIKey(env.GetEnv("CLIPDROP_API", "")),
		BaseURL: strings.TrimRight(env.GetEnv("CLIPDROP_API_BASE_URL", defaultBaseURL), "/"),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

var apiKeyJunk = regexp.MustCompile(`\s+`)

// SanitizeAPIKey strips whitespace, line breaks and surrounding quotes.
func SanitizeAPIKey(key string) string {
	key = apiKeyJunk.ReplaceAllString(key, "")
	key = strings.Trim(key, `'"`)
	return key
}

// GenerateImage sends the prompt as multipart form data and returns the raw
// image bytes. The response size is intentionally uncapped; only the error
// paths read with a limit.
func (c *Client) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	if c.APIKey == "" {
		return nil, ErrAPIKeyMissing
	}

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	if err := form.WriteField("prompt", prompt); err != nil {
		return nil, err
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+textToImagePath, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Accept", "image/*")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrAPIKeyInvalid
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(msg)),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading image payload failed: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	return data, nil
}

// DataURI encodes image bytes for transport inside a JSON response.
func DataURI(data []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}
