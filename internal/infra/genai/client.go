package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"storefront/internal/domain"
	"storefront/internal/metrics"
)

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
	Contents          []content `json:"contents"`
}

// Client calls the Gemini generateContent endpoint over HTTP.
type Client struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
	log        *logrus.Logger
}

var _ TextGenerator = (*Client)(nil)

func NewClient(baseURL, model, apiKey string, timeout time.Duration, log *logrus.Logger) *Client {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

func (c *Client) GenerateDescription(ctx context.Context, name, category, features string) string {
	if c.apiKey == "" {
		metrics.RecordCollaborator("describe", "missing_key")
		return DescriptionMissingKey
	}

	text, err := c.generate(ctx, generateRequest{
		Contents: []content{{Role: string(domain.RoleUser), Parts: []part{{Text: descriptionPrompt(name, category, features)}}}},
	})
	if err != nil {
		metrics.RecordCollaborator("describe", "error")
		c.log.WithError(err).WithField("product", name).Warn("description generation failed")
		return DescriptionFailed
	}
	if text == "" {
		metrics.RecordCollaborator("describe", "empty")
		return DescriptionEmpty
	}
	metrics.RecordCollaborator("describe", "ok")
	return text
}

func (c *Client) Chat(ctx context.Context, history []domain.ChatMessage, message string, catalog []domain.Product) string {
	if c.apiKey == "" {
		metrics.RecordCollaborator("chat", "missing_key")
		return ChatMissingKey
	}

	contents := make([]content, 0, len(history)+1)
	for _, m := range history {
		contents = append(contents, content{Role: string(m.Role), Parts: []part{{Text: m.Text}}})
	}
	contents = append(contents, content{Role: string(domain.RoleUser), Parts: []part{{Text: message}}})

	text, err := c.generate(ctx, generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: chatInstruction(catalog)}}},
		Contents:          contents,
	})
	if err != nil {
		metrics.RecordCollaborator("chat", "error")
		c.log.WithError(err).Warn("chat generation failed")
		return ChatFailed
	}
	if text == "" {
		metrics.RecordCollaborator("chat", "empty")
		return ChatEmpty
	}
	metrics.RecordCollaborator("chat", "ok")
	return text
}

func (c *Client) generate(ctx context.Context, body generateRequest) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation service returned status %d: %s",
			resp.StatusCode, gjson.GetBytes(raw, "error.message").String())
	}

	var b strings.Builder
	for _, p := range gjson.GetBytes(raw, "candidates.0.content.parts.#.text").Array() {
		b.WriteString(p.String())
	}
	return strings.TrimSpace(b.String()), nil
}
