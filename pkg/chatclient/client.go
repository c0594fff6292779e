// Package chatclient 呼叫 voxrelay /api 端點的 Go 客戶端，
// 並提供對話與錄音兩個狀態機。
package chatclient

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
)

const (
	chatPath       = "/api/chat"
	transcribePath = "/api/transcribe"
	statusPath     = "/api/status"
)

// Client 零值不可用，請用 New
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	// 有設定時以 X-Proxy-Token 帶出
	ProxyToken string
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.HTTPClient = httpClient }
}

func WithProxyToken(token string) Option {
	return func(c *Client) { c.ProxyToken = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Messages       []Message      `json:"messages"`
	Temperature    *float64       `json:"temperature,omitempty"`
	MaxTokens      *int           `json:"max_tokens,omitempty"`
	ResponseFormat map[string]any `json:"response_format,omitempty"`
}

type Transcription struct {
	Text     string   `json:"text"`
	Duration *float64 `json:"duration"`
	Language *string  `json:"language"`
}

type Status struct {
	OpenAIConfigured bool    `json:"openaiConfigured"`
	Source           *string `json:"source"`
	Message          string  `json:"message"`
	Timestamp        string  `json:"timestamp"`
}

// Chat 回傳上游 chat completion 原始 JSON
func (c *Client) Chat(ctx context.Context, req ChatRequest) ([]byte, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode chat request: %w", err)
	}
	return c.do(ctx, http.MethodPost, chatPath, "application/json", bytes.NewReader(payload))
}

// Transcribe 以 multipart 上傳音訊，欄位名稱固定為 file
func (c *Client) Transcribe(ctx context.Context, name, mimeType string, audio io.Reader) (*Transcription, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	header.Set("Content-Type", mimeType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, fmt.Errorf("copy audio: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	raw, err := c.do(ctx, http.MethodPost, transcribePath, writer.FormDataContentType(), body)
	if err != nil {
		return nil, err
	}
	var out Transcription
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode transcription: %w", err)
	}
	return &out, nil
}

func (c *Client) Status(ctx context.Context) (*Status, error) {
	raw, err := c.do(ctx, http.MethodGet, statusPath, "", nil)
	if err != nil {
		return nil, err
	}
	var out Status
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode status: %w", err)
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.ProxyToken != "" {
		req.Header.Set("X-Proxy-Token", c.ProxyToken)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, raw)
	}
	return raw, nil
}
