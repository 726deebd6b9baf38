// Package client talks to the report REST API of another instance.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"patrol-inspection/internal/storage"
)

var ErrUnreachable = errors.New("report backend is unreachable")

// APIError is a non-2xx answer of the backend.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend returned %d %s", e.Status, http.StatusText(e.Status))
}

// Is lets a 404 match storage.ErrReportNotFound.
func (e *APIError) Is(target error) bool {
	return target == storage.ErrReportNotFound && e.Status == http.StatusNotFound
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New expects the API root, e.g. http://localhost:8000/api.
func New(baseURL string, timeout time.Duration) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
	}
}

func (c *Client) ListReports(ctx context.Context, filter storage.ReportFilter) ([]storage.ReportSummary, error) {
	const op = "client.ListReports"

	q := url.Values{}
	if filter.Date != "" {
		q.Set("date", filter.Date)
	}
	if filter.PartName != "" {
		q.Set("part_name", filter.PartName)
	}
	if filter.OperationName != "" {
		q.Set("operation_name", filter.OperationName)
	}
	if filter.CustomerName != "" {
		q.Set("customer_name", filter.CustomerName)
	}

	path := "/reports/"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var res []storage.ReportSummary
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

func (c *Client) GetReport(ctx context.Context, id int64) (*storage.Report, error) {
	const op = "client.GetReport"

	var res storage.Report
	if err := c.do(ctx, http.MethodGet, reportPath(id), nil, &res); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &res, nil
}

func (c *Client) CreateReport(ctx context.Context, r *storage.Report) (int64, error) {
	const op = "client.CreateReport"

	var res storage.Report
	if err := c.do(ctx, http.MethodPost, "/reports/", r, &res); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return res.ID, nil
}

func (c *Client) UpdateReport(ctx context.Context, id int64, r *storage.Report) error {
	const op = "client.UpdateReport"

	if err := c.do(ctx, http.MethodPut, reportPath(id), r, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Client) DeleteReport(ctx context.Context, id int64) error {
	const op = "client.DeleteReport"

	if err := c.do(ctx, http.MethodDelete, reportPath(id), nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Client) DropdownOptions(ctx context.Context) (storage.DropdownOptions, error) {
	const op = "client.DropdownOptions"

	var res storage.DropdownOptions
	if err := c.do(ctx, http.MethodGet, "/dropdown-options/", nil, &res); err != nil {
		return res, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

func reportPath(id int64) string {
	return "/reports/" + strconv.FormatInt(id, 10) + "/"
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v. Make sure the backend is running at %s", ErrUnreachable, method, path, err, c.baseURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeAPIError reads {"detail": ...} or {"error": ...} from the body when present.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(data) == 0 {
		return apiErr
	}

	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil {
		apiErr.Detail = payload.Detail
		if apiErr.Detail == "" {
			apiErr.Detail = payload.Error
		}
	}

	return apiErr
}
