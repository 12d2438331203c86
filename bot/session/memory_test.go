package session

import (
	"context"
	"errors"
	"testing"

	"grabbot/bot/locale"
)

func TestMemoryDefaultLanguage(t *testing.T) {
	ctx := context.Background()
	s := NewMemory("en")

	lang, err := s.Language(ctx, 100)
	if err != nil {
		t.Fatalf("Language: %v", err)
	}
	if lang != "en" {
		t.Fatalf("Language = %q, want fallback %q", lang, "en")
	}
}

func TestMemoryInvalidFallbackUsesDefault(t *testing.T) {
	ctx := context.Background()
	s := NewMemory("xx")

	lang, err := s.Language(ctx, 100)
	if err != nil {
		t.Fatalf("Language: %v", err)
	}
	if lang != locale.Default {
		t.Fatalf("Language = %q, want %q", lang, locale.Default)
	}
}

func TestMemorySetLanguage(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(locale.Default)

	if err := s.SetLanguage(ctx, 100, "ru"); err != nil {
		t.Fatalf("SetLanguage: %v", err)
	}
	lang, err := s.Language(ctx, 100)
	if err != nil {
		t.Fatalf("Language: %v", err)
	}
	if lang != "ru" {
		t.Fatalf("Language = %q, want %q", lang, "ru")
	}

	// Other users are unaffected.
	lang, err = s.Language(ctx, 200)
	if err != nil {
		t.Fatalf("Language: %v", err)
	}
	if lang != locale.Default {
		t.Fatalf("Language(other) = %q, want %q", lang, locale.Default)
	}
}

func TestMemoryRejectsUnknownLanguage(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(locale.Default)

	if err := s.SetLanguage(ctx, 100, "de"); !errors.Is(err, ErrUnknownLanguage) {
		t.Fatalf("SetLanguage(de) = %v, want ErrUnknownLanguage", err)
	}
	lang, err := s.Language(ctx, 100)
	if err != nil {
		t.Fatalf("Language: %v", err)
	}
	if lang != locale.Default {
		t.Fatalf("Language after rejected set = %q, want %q", lang, locale.Default)
	}
}

func TestMemoryPendingURLLastWriteWins(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(locale.Default)

	if _, err := s.PendingURL(ctx, 100); !errors.Is(err, ErrNoPendingURL) {
		t.Fatalf("PendingURL before submit = %v, want ErrNoPendingURL", err)
	}

	if err := s.SetPendingURL(ctx, 100, "https://example.com/a"); err != nil {
		t.Fatalf("SetPendingURL: %v", err)
	}
	if err := s.SetPendingURL(ctx, 100, "https://example.com/b"); err != nil {
		t.Fatalf("SetPendingURL: %v", err)
	}

	url, err := s.PendingURL(ctx, 100)
	if err != nil {
		t.Fatalf("PendingURL: %v", err)
	}
	if url != "https://example.com/b" {
		t.Fatalf("PendingURL = %q, want the latest submitted link", url)
	}
}

func TestMemoryPendingURLSurvivesReads(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(locale.Default)

	if err := s.SetPendingURL(ctx, 100, "https://example.com/a"); err != nil {
		t.Fatalf("SetPendingURL: %v", err)
	}
	for i := 0; i < 3; i++ {
		url, err := s.PendingURL(ctx, 100)
		if err != nil {
			t.Fatalf("PendingURL read %d: %v", i, err)
		}
		if url != "https://example.com/a" {
			t.Fatalf("PendingURL read %d = %q", i, url)
		}
	}
}

func TestMemoryCount(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(locale.Default)

	if n, _ := s.Count(ctx); n != 0 {
		t.Fatalf("Count = %d, want 0", n)
	}
	_ = s.SetLanguage(ctx, 100, "en")
	_ = s.SetPendingURL(ctx, 200, "https://example.com")
	_ = s.SetLanguage(ctx, 100, "ru")

	if n, _ := s.Count(ctx); n != 2 {
		t.Fatalf("Count = %d, want 2", n)
	}
}
