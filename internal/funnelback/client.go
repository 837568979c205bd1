package funnelback

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"unisearch-gateway/internal/metrics"

	"go.uber.org/zap"
)

const (
	searchPath  = "/s/search.html"
	suggestPath = "/s/suggest.json"

	// maxResponseSize guards against a runaway upstream body.
	maxResponseSize = 4 * 1024 * 1024

	// suggestShow is how many suggestions each bucket asks the backend for.
	suggestShow = 10

	// maxErrorBody bounds how much of an upstream error body is kept for
	// logs and UpstreamError.
	maxErrorBody = 2048
)

// Search performs a single GET against the results endpoint and returns
// the rendered HTML fragment. The request is bounded by UpstreamTimeout
// and aborted at the deadline; failures surface to the caller unretried.
func (c *client) Search(parentCtx context.Context, req *SearchRequest) ([]byte, error) {
	start := time.Now()

	if req == nil {
		return nil, fmt.Errorf("funnelback: request is nil")
	}

	r := *req
	if r.Collection == "" {
		r.Collection = c.cfg.Collection
	}
	if r.Profile == "" {
		r.Profile = c.cfg.Profile
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("funnelback: invalid request: %w", err)
	}

	ctx, cancel := context.WithTimeout(parentCtx, c.cfg.UpstreamTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("query", r.Query)
	params.Set("collection", r.Collection)
	params.Set("profile", r.Profile)
	if r.Form != "" {
		params.Set("form", r.Form)
	}

	body, err := c.get(ctx, searchPath, params)

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.BackendLatencySeconds.WithLabelValues("search", status).Observe(time.Since(start).Seconds())

	if err != nil {
		c.logger.Error("search request failed",
			zap.String("collection", r.Collection),
			zap.String("form", r.Form),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}

	c.logger.Debug("search request complete",
		zap.String("collection", r.Collection),
		zap.String("form", r.Form),
		zap.Int("bytes", len(body)),
		zap.Duration("duration", time.Since(start)),
	)

	return body, nil
}

// Suggest queries the completion endpoint once per requested bucket and
// assembles the grouped response. A failing bucket fails the whole lookup;
// partial suggestions would be indistinguishable from "no matches".
func (c *client) Suggest(parentCtx context.Context, req *SuggestRequest) (*Suggestions, error) {
	start := time.Now()

	if req == nil {
		return nil, fmt.Errorf("funnelback: request is nil")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("funnelback: invalid request: %w", err)
	}

	typ := req.Type
	if typ == "" {
		typ = TypeAll
	}

	ctx, cancel := context.WithTimeout(parentCtx, c.cfg.UpstreamTimeout)
	defer cancel()

	out := &Suggestions{
		General:  []string{},
		Staff:    []string{},
		Programs: []string{},
	}

	buckets := []struct {
		name       string
		collection string
		dest       *[]string
	}{
		{TypeGeneral, c.cfg.Collection, &out.General},
		{TypeStaff, c.cfg.StaffCollection, &out.Staff},
		{TypePrograms, c.cfg.ProgramsCollection, &out.Programs},
	}

	for _, b := range buckets {
		if typ != TypeAll && typ != b.name {
			continue
		}

		params := url.Values{}
		params.Set("partial_query", req.Query)
		params.Set("collection", b.collection)
		params.Set("show", strconv.Itoa(suggestShow))

		body, err := c.get(ctx, suggestPath, params)
		if err != nil {
			metrics.BackendLatencySeconds.WithLabelValues("suggest", "error").Observe(time.Since(start).Seconds())
			c.logger.Error("suggest request failed",
				zap.String("bucket", b.name),
				zap.Error(err),
			)
			return nil, err
		}

		suggestions, err := parseSuggestBody(body)
		if err != nil {
			metrics.BackendLatencySeconds.WithLabelValues("suggest", "error").Observe(time.Since(start).Seconds())
			return nil, fmt.Errorf("funnelback: decode %s suggestions: %w", b.name, err)
		}
		*b.dest = suggestions
	}

	metrics.BackendLatencySeconds.WithLabelValues("suggest", "ok").Observe(time.Since(start).Seconds())
	return out, nil
}

// get issues one GET and returns the body. Non-2xx responses become
// UpstreamError.
func (c *client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.cfg.BaseURL + path + "?" + params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("funnelback: build HTTP request: %w", err)
	}
	httpReq.Header.Set("Accept", "*/*")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("funnelback: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &UpstreamError{
			Status: resp.StatusCode,
			Body:   string(body),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("funnelback: read response: %w", err)
	}
	return body, nil
}

// parseSuggestBody handles both shapes the completion endpoint produces:
// a plain JSON array of strings, or the rich form with a "disp" field.
func parseSuggestBody(body []byte) ([]string, error) {
	var plain []string
	if err := json.Unmarshal(body, &plain); err == nil {
		return plain, nil
	}

	var rich []struct {
		Disp string `json:"disp"`
	}
	if err := json.Unmarshal(body, &rich); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(rich))
	for _, r := range rich {
		if r.Disp != "" {
			out = append(out, r.Disp)
		}
	}
	return out, nil
}
