package simulation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bkt_predictor/internal/model"
)

// Client is a minimal HTTP client for the predictor API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) postJSON(path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := c.HTTP.Post(c.BaseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("cannot reach %s%s: %w", c.BaseURL, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s%s: %s", resp.StatusCode, c.BaseURL, path, string(raw))
	}

	return json.Unmarshal(raw, out)
}

func (c *Client) Predict(req *model.PredictRequest) (*model.PredictResponse, error) {
	var resp model.PredictResponse
	if err := c.postJSON("/predict", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Observe(req *model.ObserveRequest) (*model.ObserveResponse, error) {
	var resp model.ObserveResponse
	if err := c.postJSON("/observe", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// WaitForServer polls /health until the API answers or retries run out.
func (c *Client) WaitForServer(retries int, sleep time.Duration) error {
	var lastErr error
	for i := 0; i < retries; i++ {
		resp, err := c.HTTP.Get(c.BaseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
			lastErr = fmt.Errorf("health returned HTTP %d", resp.StatusCode)
		} else {
			lastErr = err
		}
		time.Sleep(sleep)
	}
	return fmt.Errorf("server not ready at %s: %w", c.BaseURL, lastErr)
}
