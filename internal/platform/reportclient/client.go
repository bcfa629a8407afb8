package reportclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kpi/internal/domain/reports"
	"kpi/internal/platform/config"
)

const maxResponseBytes = 32 << 20

var ErrRejected = errors.New("report service rejected the request")

// Client posts export requests to the remote report generator, which answers
// with {"success": true, "pdf": "<base64>", "filename": "..."}.
type Client struct {
	URL  string
	HTTP *http.Client
}

type response struct {
	Success  bool   `json:"success"`
	PDF      string `json:"pdf"`
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// New returns nil when no report service is configured.
func New(cfg config.Config) reports.Generator {
	if strings.TrimSpace(cfg.ReportServiceURL) == "" {
		return nil
	}
	return NewClient(cfg.ReportServiceURL, cfg.ReportTimeout)
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{URL: url, HTTP: &http.Client{Timeout: timeout}}
}

func (c *Client) Generate(ctx context.Context, req reports.Request) (reports.Document, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return reports.Document{}, fmt.Errorf("encode report request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return reports.Document{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return reports.Document{}, fmt.Errorf("call report service: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return reports.Document{}, fmt.Errorf("read report response: %w", err)
	}
	var payload response
	if resp.StatusCode != http.StatusOK {
		if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
			return reports.Document{}, fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, payload.Error)
		}
		return reports.Document{}, fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}

	if err := json.Unmarshal(raw, &payload); err != nil {
		return reports.Document{}, fmt.Errorf("decode report response: %w", err)
	}
	if !payload.Success || payload.PDF == "" {
		if payload.Error != "" {
			return reports.Document{}, fmt.Errorf("%w: %s", ErrRejected, payload.Error)
		}
		return reports.Document{}, ErrRejected
	}

	data, err := base64.StdEncoding.DecodeString(payload.PDF)
	if err != nil {
		return reports.Document{}, fmt.Errorf("decode report payload: %w", err)
	}
	return reports.Document{
		Filename:    payload.Filename,
		ContentType: reports.DefaultContentType,
		Data:        data,
	}, nil
}
