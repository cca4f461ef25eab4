// Package ollama provides a minimal client for the /api/generate endpoint of
// an Ollama-compatible server, tuned for one-shot briefing generation.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// Defaults for briefing generation: a lightweight model and a short hard
// timeout so a hung server only costs one bounded wait.
const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "analyst"
	DefaultTimeout = 30 * time.Second
)

// Generation options held fixed for briefings.
const (
	briefingTemperature = 0.3
	briefingNumPredict  = 512
)

// Client issues single non-streaming generate requests.
type Client struct {
	baseURL    string
	model      string
	timeout    time.Duration
	httpClient *http.Client
}

// New constructs a Client. Empty/zero arguments take the package defaults.
func New(baseURL, model string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	// Timeout stays 0 on the http.Client: every request carries a
	// context deadline applied in Generate.
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		timeout:    timeout,
		httpClient: &http.Client{Transport: tr, Timeout: 0},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	System string `json:"system,omitempty"`
	Stream bool   `json:"stream"`
	// Think is serialized unconditionally: some backing models leak
	// chain-of-thought into the response field unless the flag is an
	// explicit false. A /no_think prompt prefix does not reliably work.
	Think   bool            `json:"think"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type generateResponse struct {
	Response string `json:"response"`
	Thinking string `json:"thinking"`
}

// Generate issues one non-streaming request and returns the generated text.
// When the primary response field is empty but the model populated the
// thinking field anyway, the thinking text is returned instead. Timeouts,
// transport errors, and non-2xx statuses return ("", err); callers treat
// any error as "no briefing".
func (c *Client) Generate(ctx context.Context, prompt, system string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload := generateRequest{
		Model:  c.model,
		Prompt: prompt,
		System: system,
		Stream: false,
		Think:  false,
		Options: generateOptions{
			Temperature: briefingTemperature,
			NumPredict:  briefingNumPredict,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", errors.New("generate http error: " + resp.Status + ": " + string(b))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.Response == "" && out.Thinking != "" {
		return out.Thinking, nil
	}
	return out.Response, nil
}
