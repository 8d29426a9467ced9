package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jask/labdesk/internal/logging"
)

var log = logging.GetLogger()

// DefaultTimeout bounds one exchange, including reading the body.
const DefaultTimeout = 30 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// Endpoints holds the base URL of each route, without a trailing slash.
type Endpoints struct {
	Chat       string
	Weather    string
	Similarity string
}

// Client talks to the chat, weather and similarity backends.
type Client struct {
	endpoints  Endpoints
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithTransport replaces the base round tripper. Requests are still logged.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = &loggingTransport{Base: rt}
	}
}

// New creates a Client for the given endpoints.
func New(endpoints Endpoints, opts ...Option) *Client {
	c := &Client{
		endpoints: Endpoints{
			Chat:       strings.TrimRight(endpoints.Chat, "/"),
			Weather:    strings.TrimRight(endpoints.Weather, "/"),
			Similarity: strings.TrimRight(endpoints.Similarity, "/"),
		},
		httpClient: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: &loggingTransport{Base: http.DefaultTransport},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chat sends one chat message.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	var out ChatResponse
	if err := c.do(ctx, http.MethodPost, c.endpoints.Chat+"/chat", req, &out); err != nil {
		return ChatResponse{}, fmt.Errorf("chat: %w", err)
	}
	return out, nil
}

// Weather looks up current conditions for a city.
func (c *Client) Weather(ctx context.Context, q WeatherQuery) (WeatherResponse, error) {
	u := c.endpoints.Weather + "/api/weather?" + url.Values{"city": {q.City}}.Encode()
	var out WeatherResponse
	if err := c.do(ctx, http.MethodGet, u, nil, &out); err != nil {
		return WeatherResponse{}, fmt.Errorf("weather: %w", err)
	}
	return out, nil
}

// Predict scores two sentences for paraphrase similarity.
func (c *Client) Predict(ctx context.Context, req SimilarityRequest) (SimilarityResponse, error) {
	var out SimilarityResponse
	if err := c.do(ctx, http.MethodPost, c.endpoints.Similarity+"/predict", req, &out); err != nil {
		return SimilarityResponse{}, fmt.Errorf("predict: %w", err)
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, target string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, rdr)
	if err != nil {
		return &TransportError{Op: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: method + " " + req.URL.Path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &TransportError{Op: "read body", Err: err}
	}

	// The error field is best effort: a non-JSON error page still counts as
	// an HTTP error, just without a message.
	var eb errorBody
	_ = json.Unmarshal(data, &eb)
	eb.Error = strings.TrimSpace(eb.Error)
	if resp.StatusCode < 200 || resp.StatusCode > 299 || eb.Error != "" {
		return &HTTPError{Status: resp.StatusCode, Message: eb.Error}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Op: "decode response", Err: err}
	}
	return nil
}
