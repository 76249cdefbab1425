// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns Mermaid source into PNG bytes by calling a remote
// rendering service such as Kroki.
package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/mermaid-render/internal/httputil"
	"github.com/pdiddy/mermaid-render/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "mermaid-render/0.1"
)

var (
	// ErrStatus is wrapped by errors for non-200 responses.
	ErrStatus = errors.New("unexpected HTTP status")
	// ErrNotImage is wrapped by errors for responses whose content type is
	// not an image.
	ErrNotImage = errors.New("response is not an image")
)

// Renderer converts one diagram source into image bytes.
type Renderer interface {
	Render(ctx context.Context, source string) ([]byte, error)
}

// Kroki posts diagram source to a Kroki-compatible endpoint.
type Kroki struct {
	client *http.Client
	cfg    types.HTTPConfig
	log    logrus.FieldLogger
}

// NewKroki builds a renderer for cfg. Zero values fall back to the public
// Kroki endpoint, a 30 second timeout, and the default User-Agent. A nil
// client gets a fresh http.Client with the configured timeout.
func NewKroki(client *http.Client, cfg types.HTTPConfig, log logrus.FieldLogger) *Kroki {
	if cfg.Endpoint == "" {
		cfg.Endpoint = types.DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Kroki{client: client, cfg: cfg, log: log}
}

// Endpoint returns the URL requests are sent to.
func (k *Kroki) Endpoint() string { return k.cfg.Endpoint }

// Render sends source as the request body and returns the response body
// unmodified. It fails on transport errors, timeouts, non-200 statuses, and
// responses whose Content-Type does not mention an image.
func (k *Kroki) Render(ctx context.Context, source string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, k.cfg.Endpoint, strings.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set("Accept", "image/png")
	req.Header.Set("User-Agent", k.cfg.UserAgent)

	start := time.Now()
	resp, err := httputil.DoWithRetry(ctx, k.client, req, k.cfg.Retries, k.log)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	entry := k.log.WithFields(logrus.Fields{
		"status":  resp.StatusCode,
		"elapsed": time.Since(start),
		"chars":   len(source),
	})

	if resp.StatusCode != http.StatusOK {
		entry.Debug("render rejected")
		return nil, fmt.Errorf("%w: HTTP %d from %s", ErrStatus, resp.StatusCode, k.cfg.Endpoint)
	}

	ct := resp.Header.Get("Content-Type")
	if !strings.Contains(ct, "image") {
		entry.WithField("content_type", ct).Debug("render returned non-image")
		return nil, fmt.Errorf("%w: content type %q", ErrNotImage, ct)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	entry.WithField("bytes", len(data)).Debug("render succeeded")
	return data, nil
}
