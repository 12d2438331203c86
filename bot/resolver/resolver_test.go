package resolver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	coreconfig "grabbot/core/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(coreconfig.ResolverConfig{
		Endpoint:       srv.URL,
		APIKey:         "test-key",
		APIHost:        "test-host",
		TimeoutSeconds: 2,
	})
}

func TestResolveSendsCredentialsAndTarget(t *testing.T) {
	var gotKey, gotHost, gotURL string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-RapidAPI-Key")
		gotHost = r.Header.Get("X-RapidAPI-Host")
		gotURL = r.URL.Query().Get("url")
		w.Write([]byte(`{"error":false,"medias":[{"url":"https://cdn/v","quality":"hd_no_watermark","type":"video"}]}`))
	})

	media, err := c.Resolve(context.Background(), "https://tiktok.com/@u/video/1", KindVideo)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if gotKey != "test-key" || gotHost != "test-host" {
		t.Errorf("credentials = (%q, %q), want (test-key, test-host)", gotKey, gotHost)
	}
	if gotURL != "https://tiktok.com/@u/video/1" {
		t.Errorf("url param = %q", gotURL)
	}
	if media.URL != "https://cdn/v" {
		t.Errorf("media.URL = %q", media.URL)
	}
}

func TestResolveUpstreamErrorFlag(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":true,"medias":[]}`))
	})

	_, err := c.Resolve(context.Background(), "https://example.com/x", KindVideo)
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("Resolve = %v, want ErrUpstream", err)
	}
}

func TestResolveUpstreamStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := c.Resolve(context.Background(), "https://example.com/x", KindAudio)
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("Resolve = %v, want ErrUpstream", err)
	}
}

func TestResolveNoCandidates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":false,"medias":[]}`))
	})

	_, err := c.Resolve(context.Background(), "https://example.com/x", KindVideo)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Resolve = %v, want ErrNotFound", err)
	}
}

func TestResolveVideoSkipsWatermarked(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":false,"medias":[
			{"url":"https://cdn/wm","quality":"hd_watermark","type":"video"},
			{"url":"https://cdn/clean","quality":"hd_no_watermark","type":"video"}
		]}`))
	})

	media, err := c.Resolve(context.Background(), "https://example.com/x", KindVideo)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if media.URL != "https://cdn/clean" {
		t.Fatalf("media.URL = %q, want the watermark-free candidate", media.URL)
	}
	if media.Kind != KindVideo {
		t.Fatalf("media.Kind = %q", media.Kind)
	}
}

func TestResolveVideoOnlyWatermarked(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":false,"medias":[
			{"url":"https://cdn/wm","quality":"hd_watermark","type":"video"}
		]}`))
	})

	_, err := c.Resolve(context.Background(), "https://example.com/x", KindVideo)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Resolve = %v, want ErrNotFound", err)
	}
}

func TestResolveAudioFirstWins(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":false,"medias":[
			{"url":"https://cdn/v","quality":"hd_no_watermark","type":"video"},
			{"url":"https://cdn/a1","quality":"128kbps","type":"audio"},
			{"url":"https://cdn/a2","quality":"320kbps","type":"audio"}
		]}`))
	})

	media, err := c.Resolve(context.Background(), "https://example.com/x", KindAudio)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if media.URL != "https://cdn/a1" {
		t.Fatalf("media.URL = %q, want the first audio candidate", media.URL)
	}
	if media.Kind != KindAudio {
		t.Fatalf("media.Kind = %q", media.Kind)
	}
}

func TestResolveSkipsEntriesWithoutURL(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":false,"medias":[
			{"url":"","quality":"128kbps","type":"audio"},
			{"url":"https://cdn/a","quality":"320kbps","type":"audio"}
		]}`))
	})

	media, err := c.Resolve(context.Background(), "https://example.com/x", KindAudio)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if media.URL != "https://cdn/a" {
		t.Fatalf("media.URL = %q", media.URL)
	}
}
