package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"formula-pad/internal/logger"
	"formula-pad/internal/markup"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const (
	// ChartTypeTeX selects the LaTeX rendering mode of the chart service
	ChartTypeTeX = "tx"

	maxResponseBytes = 16 << 20
)

var ErrEmptyResponse = errors.New("render service returned an empty body")

// RenderService turns formula text into an image by asking the remote chart
// service to draw it.
type RenderService struct {
	client   *http.Client
	endpoint string
	logger   logger.Logger
}

// NewRenderService creates a render service for the given endpoint
func NewRenderService(endpoint string, timeout time.Duration, log logger.Logger) *RenderService {
	return &RenderService{
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
		logger:   log,
	}
}

// RequestURL builds the GET URL for text after markup preprocessing
func (rs *RenderService) RequestURL(text string) string {
	chl := url.QueryEscape(markup.Preprocess(text))
	sep := "?"
	if strings.Contains(rs.endpoint, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%scht=%s&chl=%s", rs.endpoint, sep, ChartTypeTeX, chl)
}

// Render fetches and decodes the image for text
func (rs *RenderService) Render(ctx context.Context, text string) (image.Image, error) {
	requestURL := rs.RequestURL(text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build render request: %w", err)
	}

	startTime := time.Now()
	resp, err := rs.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, fmt.Errorf("render service returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read render response: %w", err)
	}
	if len(body) == 0 {
		return nil, ErrEmptyResponse
	}
	if len(body) > maxResponseBytes {
		return nil, fmt.Errorf("render response exceeds %d bytes", maxResponseBytes)
	}

	img, format, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to decode rendered formula: %w", err)
	}

	rs.logger.Debug("RenderService", "formula rendered", map[string]interface{}{
		"format":      format,
		"bytes":       len(body),
		"duration_ms": time.Since(startTime).Milliseconds(),
	})

	return img, nil
}
