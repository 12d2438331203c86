// Package resolver turns a social media link into a direct download URL via
// an external aggregation API.
package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	coreconfig "grabbot/core/config"
	"grabbot/core/logger"
)

// Kind selects which media variant to extract from the upstream answer.
type Kind string

const (
	// KindVideo selects a watermark-free video variant.
	KindVideo Kind = "video"
	// KindAudio selects an audio variant.
	KindAudio Kind = "audio"
)

var (
	// ErrUpstream indicates the aggregation API failed or reported an error.
	ErrUpstream = errors.New("resolver: upstream error")
	// ErrNotFound indicates the upstream answered but carried no suitable media.
	ErrNotFound = errors.New("resolver: no matching media")
)

// Media is a resolved downloadable variant.
type Media struct {
	Kind    Kind
	Quality string
	URL     string
}

type apiMedia struct {
	URL     string `json:"url"`
	Quality string `json:"quality"`
	Type    string `json:"type"`
}

type apiResponse struct {
	Error  bool       `json:"error"`
	Medias []apiMedia `json:"medias"`
}

// Client queries the aggregation API. Each resolution is a single request;
// retry policy is left to the caller.
type Client struct {
	endpoint string
	apiKey   string
	apiHost  string
	http     *http.Client
}

// New builds a Client from resolver configuration.
func New(cfg coreconfig.ResolverConfig) *Client {
	timeout := 30 * time.Second
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		apiHost:  cfg.APIHost,
		http:     &http.Client{Timeout: timeout},
	}
}

// Resolve asks the upstream for the media behind target and picks the variant
// matching kind. Video requires a watermark-free quality label; audio takes
// the first audio entry. Candidate order follows the upstream answer.
func (c *Client) Resolve(ctx context.Context, target string, kind Kind) (Media, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return Media{}, fmt.Errorf("resolver: build request: %w", err)
	}
	q := url.Values{}
	q.Set("url", target)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.apiHost)

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error(ctx, "service.resolver", "resolve.failed",
			slog.String("kind", string(kind)),
			slog.String("err", err.Error()),
		)
		return Media{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Error(ctx, "service.resolver", "resolve.failed",
			slog.String("kind", string(kind)),
			slog.Int("status", resp.StatusCode),
		)
		return Media{}, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Media{}, fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}
	if parsed.Error {
		logger.Warn(ctx, "service.resolver", "resolve.failed",
			slog.String("kind", string(kind)),
			slog.String("reason", "upstream_flag"),
		)
		return Media{}, fmt.Errorf("%w: upstream reported error", ErrUpstream)
	}

	media, ok := pick(parsed.Medias, kind)
	if !ok {
		logger.Info(ctx, "service.resolver", "resolve.empty",
			slog.String("kind", string(kind)),
			slog.Int("candidates", len(parsed.Medias)),
		)
		return Media{}, ErrNotFound
	}

	logger.Info(ctx, "service.resolver", "resolve.ok",
		slog.String("kind", string(kind)),
		slog.String("quality", media.Quality),
		slog.Int("candidates", len(parsed.Medias)),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return media, nil
}

func pick(medias []apiMedia, kind Kind) (Media, bool) {
	for _, m := range medias {
		if m.URL == "" {
			continue
		}
		switch kind {
		case KindVideo:
			if m.Type == "video" && strings.Contains(m.Quality, "no_watermark") {
				return Media{Kind: KindVideo, Quality: m.Quality, URL: m.URL}, true
			}
		case KindAudio:
			if m.Type == "audio" {
				return Media{Kind: KindAudio, Quality: m.Quality, URL: m.URL}, true
			}
		}
	}
	return Media{}, false
}
