package flow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"grabbot/bot/locale"
	"grabbot/bot/resolver"
	"grabbot/bot/session"
)

type stubResolver struct {
	media resolver.Media
	err   error
	calls []string
}

func (s *stubResolver) Resolve(ctx context.Context, target string, kind resolver.Kind) (resolver.Media, error) {
	s.calls = append(s.calls, target+"|"+string(kind))
	return s.media, s.err
}

func newFlow(res *stubResolver) (*Flow, session.Store) {
	store := session.NewMemory(locale.Default)
	return New(store, res, "AdInboxBot"), store
}

func collect(replies *[]Reply) func(Reply) error {
	return func(r Reply) error {
		*replies = append(*replies, r)
		return nil
	}
}

func TestStartOffersAllLanguages(t *testing.T) {
	f, _ := newFlow(&stubResolver{})
	r := f.Start(context.Background())

	if r.Text != locale.T(locale.Default, locale.KeyChooseLanguage) {
		t.Errorf("Start text = %q", r.Text)
	}
	if len(r.Buttons) != 1 || len(r.Buttons[0]) != 3 {
		t.Fatalf("Start buttons = %v, want one row of 3", r.Buttons)
	}
	want := []string{"lang_uz", "lang_ru", "lang_en"}
	for i, btn := range r.Buttons[0] {
		if btn.Tag != want[i] {
			t.Errorf("button %d tag = %q, want %q", i, btn.Tag, want[i])
		}
	}
}

func TestSelectLanguageShowsServiceMenu(t *testing.T) {
	ctx := context.Background()
	f, store := newFlow(&stubResolver{})

	r, err := f.SelectLanguage(ctx, 100, "ru")
	if err != nil {
		t.Fatalf("SelectLanguage: %v", err)
	}
	if !r.Edit {
		t.Error("service menu should edit the picker message in place")
	}
	if r.Text != locale.T("ru", locale.KeyChooseService) {
		t.Errorf("menu text = %q", r.Text)
	}
	tags := map[string]bool{}
	for _, row := range r.Buttons {
		for _, b := range row {
			tags[b.Tag] = true
		}
	}
	for _, tag := range []string{TagDownload, TagPremium, TagAds} {
		if !tags[tag] {
			t.Errorf("service menu is missing tag %q", tag)
		}
	}

	lang, _ := store.Language(ctx, 100)
	if lang != "ru" {
		t.Errorf("stored language = %q", lang)
	}
}

func TestSelectLanguageRejectsUnknownCode(t *testing.T) {
	ctx := context.Background()
	f, store := newFlow(&stubResolver{})

	_, err := f.SelectLanguage(ctx, 100, "de")
	if !errors.Is(err, session.ErrUnknownLanguage) {
		t.Fatalf("SelectLanguage(de) = %v, want ErrUnknownLanguage", err)
	}
	lang, _ := store.Language(ctx, 100)
	if lang != locale.Default {
		t.Errorf("language changed to %q after rejected selection", lang)
	}
}

func TestPremiumAndAdsInterpolateContact(t *testing.T) {
	ctx := context.Background()
	f, _ := newFlow(&stubResolver{})
	_, _ = f.SelectLanguage(ctx, 100, "en")

	for _, r := range []Reply{f.Premium(ctx, 100), f.Ads(ctx, 100)} {
		if !strings.Contains(r.Text, "@AdInboxBot") {
			t.Errorf("reply %q is missing the contact handle", r.Text)
		}
	}
}

func TestSubmitURLRejectsNonLinks(t *testing.T) {
	ctx := context.Background()
	f, store := newFlow(&stubResolver{})
	_ = store.SetPendingURL(ctx, 100, "https://example.com/old")

	r, err := f.SubmitURL(ctx, 100, "hello there")
	if err != nil {
		t.Fatalf("SubmitURL: %v", err)
	}
	if r.Text != locale.T(locale.Default, locale.KeyInvalidLink) {
		t.Errorf("reply = %q, want invalid-link text", r.Text)
	}
	if len(r.Buttons) != 0 {
		t.Errorf("invalid link reply should carry no buttons, got %v", r.Buttons)
	}

	url, err := store.PendingURL(ctx, 100)
	if err != nil || url != "https://example.com/old" {
		t.Errorf("pending url = (%q, %v), want earlier link untouched", url, err)
	}
}

func TestSubmitURLStoresLinkAndOffersKinds(t *testing.T) {
	ctx := context.Background()
	f, store := newFlow(&stubResolver{})

	r, err := f.SubmitURL(ctx, 100, "https://tiktok.com/@u/video/1")
	if err != nil {
		t.Fatalf("SubmitURL: %v", err)
	}
	if len(r.Buttons) != 1 || len(r.Buttons[0]) != 2 {
		t.Fatalf("kind menu buttons = %v", r.Buttons)
	}
	if r.Buttons[0][0].Tag != TagVideo || r.Buttons[0][1].Tag != TagAudio {
		t.Errorf("kind menu tags = %q, %q", r.Buttons[0][0].Tag, r.Buttons[0][1].Tag)
	}

	url, err := store.PendingURL(ctx, 100)
	if err != nil || url != "https://tiktok.com/@u/video/1" {
		t.Errorf("pending url = (%q, %v)", url, err)
	}
}

func TestSubmitURLTrimsWhitespace(t *testing.T) {
	ctx := context.Background()
	f, store := newFlow(&stubResolver{})

	r, err := f.SubmitURL(ctx, 100, "  https://example.com/clip \n")
	if err != nil {
		t.Fatalf("SubmitURL: %v", err)
	}
	if r.Text != locale.T(locale.Default, locale.KeyChooseKind) {
		t.Fatalf("reply = %q, want kind menu for a padded link", r.Text)
	}

	url, err := store.PendingURL(ctx, 100)
	if err != nil || url != "https://example.com/clip" {
		t.Fatalf("pending url = (%q, %v), want trimmed link", url, err)
	}
}

func TestRequestMediaWithoutLink(t *testing.T) {
	ctx := context.Background()
	res := &stubResolver{}
	f, _ := newFlow(res)

	var replies []Reply
	if err := f.RequestMedia(ctx, 100, resolver.KindVideo, collect(&replies)); err != nil {
		t.Fatalf("RequestMedia: %v", err)
	}
	if len(replies) != 1 || replies[0].Text != locale.T(locale.Default, locale.KeyLinkFirst) {
		t.Fatalf("replies = %+v, want single link-first prompt", replies)
	}
	if len(res.calls) != 0 {
		t.Errorf("resolver called without a stored link: %v", res.calls)
	}
}

func TestRequestMediaUpstreamFailure(t *testing.T) {
	ctx := context.Background()
	res := &stubResolver{err: fmt.Errorf("%w: status 500", resolver.ErrUpstream)}
	f, store := newFlow(res)
	_ = store.SetPendingURL(ctx, 100, "https://example.com/x")

	var replies []Reply
	if err := f.RequestMedia(ctx, 100, resolver.KindVideo, collect(&replies)); err != nil {
		t.Fatalf("RequestMedia: %v", err)
	}
	if len(replies) != 2 {
		t.Fatalf("replies = %+v, want progress then failure", replies)
	}
	if replies[0].Text != locale.T(locale.Default, locale.KeyDownloading) {
		t.Errorf("first reply = %q, want progress notice", replies[0].Text)
	}
	if replies[1].Text != locale.T(locale.Default, locale.KeyUpstreamFailed) {
		t.Errorf("second reply = %q, want upstream failure text", replies[1].Text)
	}
}

func TestRequestMediaNotFound(t *testing.T) {
	ctx := context.Background()
	res := &stubResolver{err: resolver.ErrNotFound}
	f, store := newFlow(res)
	_ = store.SetPendingURL(ctx, 100, "https://example.com/x")

	var replies []Reply
	if err := f.RequestMedia(ctx, 100, resolver.KindAudio, collect(&replies)); err != nil {
		t.Fatalf("RequestMedia: %v", err)
	}
	if len(replies) != 2 || replies[1].Text != locale.T(locale.Default, locale.KeyNotFound) {
		t.Fatalf("replies = %+v, want not-found text last", replies)
	}
}

func TestRequestMediaDeliveryFailure(t *testing.T) {
	ctx := context.Background()
	res := &stubResolver{media: resolver.Media{Kind: resolver.KindVideo, URL: "https://cdn/v"}}
	f, store := newFlow(res)
	_ = store.SetPendingURL(ctx, 100, "https://example.com/x")

	var texts []string
	err := f.RequestMedia(ctx, 100, resolver.KindVideo, func(r Reply) error {
		if r.Media != nil {
			return errors.New("file is too big")
		}
		texts = append(texts, r.Text)
		return nil
	})
	if err != nil {
		t.Fatalf("RequestMedia: %v", err)
	}
	last := texts[len(texts)-1]
	if !strings.Contains(last, "file is too big") {
		t.Fatalf("last reply = %q, want delivery error detail", last)
	}
}

func TestDownloadScenario(t *testing.T) {
	ctx := context.Background()
	res := &stubResolver{media: resolver.Media{
		Kind:    resolver.KindVideo,
		Quality: "hd_no_watermark",
		URL:     "https://cdn/video.mp4",
	}}
	f, _ := newFlow(res)

	// /start, pick English, choose the download service.
	start := f.Start(ctx)
	if len(start.Buttons) == 0 {
		t.Fatal("no language buttons on start")
	}
	if _, err := f.SelectLanguage(ctx, 42, "en"); err != nil {
		t.Fatalf("SelectLanguage: %v", err)
	}
	prompt := f.Download(ctx, 42)
	if prompt.Text != locale.T("en", locale.KeySendLink) {
		t.Fatalf("download prompt = %q", prompt.Text)
	}

	// Submit a link, ask for the video.
	kindMenu, err := f.SubmitURL(ctx, 42, "https://www.tiktok.com/@user/video/123")
	if err != nil {
		t.Fatalf("SubmitURL: %v", err)
	}
	if kindMenu.Text != locale.T("en", locale.KeyChooseKind) {
		t.Fatalf("kind menu = %q", kindMenu.Text)
	}

	var replies []Reply
	if err := f.RequestMedia(ctx, 42, resolver.KindVideo, collect(&replies)); err != nil {
		t.Fatalf("RequestMedia: %v", err)
	}
	if len(replies) != 2 {
		t.Fatalf("replies = %+v, want progress then media", replies)
	}
	if replies[0].Text != locale.T("en", locale.KeyDownloading) {
		t.Errorf("progress = %q, want English notice", replies[0].Text)
	}
	media := replies[1].Media
	if media == nil || media.URL != "https://cdn/video.mp4" {
		t.Fatalf("media reply = %+v", replies[1])
	}
	if media.Caption != locale.T("en", locale.KeyDoneCaption, "AdInboxBot") {
		t.Errorf("caption = %q", media.Caption)
	}

	// The stored link survives, so audio works without resubmitting.
	res.media = resolver.Media{Kind: resolver.KindAudio, URL: "https://cdn/audio.mp3"}
	replies = nil
	if err := f.RequestMedia(ctx, 42, resolver.KindAudio, collect(&replies)); err != nil {
		t.Fatalf("RequestMedia(audio): %v", err)
	}
	if len(replies) != 2 || replies[1].Media == nil || replies[1].Media.URL != "https://cdn/audio.mp3" {
		t.Fatalf("audio replies = %+v", replies)
	}
	if len(res.calls) != 2 || !strings.HasPrefix(res.calls[1], "https://www.tiktok.com/@user/video/123|") {
		t.Fatalf("resolver calls = %v", res.calls)
	}
}
