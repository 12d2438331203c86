// Package flow implements the conversational logic of the bot: the language
// picker, the service menu, link intake, and media delivery. It is transport
// agnostic; handlers translate Reply values into Telegram messages.
package flow

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"grabbot/bot/locale"
	"grabbot/bot/resolver"
	"grabbot/bot/session"
	"grabbot/core/logger"
)

// Selection tags carried in inline keyboard callbacks.
const (
	TagDownload = "download"
	TagPremium  = "premium"
	TagAds      = "reklama"
	TagVideo    = "get_video"
	TagAudio    = "get_audio"

	langTagPrefix = "lang_"
)

// LangTag builds the selection tag for a language button.
func LangTag(code string) string {
	return langTagPrefix + code
}

var urlRe = regexp.MustCompile(`^https?://`)

// Button is an inline keyboard button: a visible label and an opaque tag
// reported back when pressed.
type Button struct {
	Label string
	Tag   string
}

// Media describes a file to deliver by URL.
type Media struct {
	Kind    resolver.Kind
	URL     string
	Caption string
}

// Reply is a single outgoing response. Either Text (optionally with Buttons)
// or Media is set. Edit asks the transport to rewrite the triggering message
// in place instead of sending a new one.
type Reply struct {
	Text    string
	Buttons [][]Button
	Media   *Media
	Edit    bool
}

// Resolver abstracts media resolution for testing.
type Resolver interface {
	Resolve(ctx context.Context, target string, kind resolver.Kind) (resolver.Media, error)
}

// Flow drives the conversation. Menu position is derived from session data,
// so it holds no per-user state of its own.
type Flow struct {
	sessions session.Store
	resolver Resolver
	contact  string
}

// New builds a Flow. contact is the support handle (without '@') interpolated
// into premium and advertising texts.
func New(sessions session.Store, res Resolver, contact string) *Flow {
	return &Flow{sessions: sessions, resolver: res, contact: contact}
}

func (f *Flow) lang(ctx context.Context, userID int64) string {
	lang, err := f.sessions.Language(ctx, userID)
	if err != nil {
		logger.Warn(ctx, "service.sessions", "session.load_failed",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return locale.Default
	}
	return lang
}

// Start returns the language picker shown on /start. The prompt repeats in
// every supported language so it reads before any choice is made.
func (f *Flow) Start(ctx context.Context) Reply {
	codes := locale.Supported()
	row := make([]Button, 0, len(codes))
	for _, code := range codes {
		row = append(row, Button{Label: locale.Name(code), Tag: LangTag(code)})
	}
	return Reply{
		Text:    locale.T(locale.Default, locale.KeyChooseLanguage),
		Buttons: [][]Button{row},
	}
}

// SelectLanguage records the user's choice and returns the service menu.
// Codes outside the enumerated set return session.ErrUnknownLanguage and
// cause no transition.
func (f *Flow) SelectLanguage(ctx context.Context, userID int64, code string) (Reply, error) {
	if err := f.sessions.SetLanguage(ctx, userID, code); err != nil {
		return Reply{}, err
	}
	menu := f.serviceMenu(code)
	menu.Edit = true
	return menu, nil
}

func (f *Flow) serviceMenu(lang string) Reply {
	return Reply{
		Text: locale.T(lang, locale.KeyChooseService),
		Buttons: [][]Button{
			{{Label: locale.T(lang, locale.KeyBtnDownload), Tag: TagDownload}},
			{
				{Label: locale.T(lang, locale.KeyBtnPremium), Tag: TagPremium},
				{Label: locale.T(lang, locale.KeyBtnAds), Tag: TagAds},
			},
		},
	}
}

// Download asks the user for a link.
func (f *Flow) Download(ctx context.Context, userID int64) Reply {
	return Reply{Text: locale.T(f.lang(ctx, userID), locale.KeySendLink)}
}

// Premium describes the premium offer with the support contact.
func (f *Flow) Premium(ctx context.Context, userID int64) Reply {
	return Reply{Text: locale.T(f.lang(ctx, userID), locale.KeyPremiumInfo, f.contact)}
}

// Ads describes advertising placement with the support contact.
func (f *Flow) Ads(ctx context.Context, userID int64) Reply {
	return Reply{Text: locale.T(f.lang(ctx, userID), locale.KeyAdsInfo, f.contact)}
}

// RejectAttachment answers updates that cannot carry a link, such as
// forwarded documents.
func (f *Flow) RejectAttachment(ctx context.Context, userID int64) Reply {
	return Reply{Text: locale.T(f.lang(ctx, userID), locale.KeyInvalidLink)}
}

// SubmitURL validates and stores a submitted link, then offers the kind
// choice. Text that does not look like an http(s) URL gets a localized
// rejection and leaves any previously stored link untouched.
func (f *Flow) SubmitURL(ctx context.Context, userID int64, text string) (Reply, error) {
	lang := f.lang(ctx, userID)
	text = strings.TrimSpace(text)
	if !urlRe.MatchString(text) {
		return Reply{Text: locale.T(lang, locale.KeyInvalidLink)}, nil
	}
	if err := f.sessions.SetPendingURL(ctx, userID, text); err != nil {
		return Reply{}, err
	}
	return Reply{
		Text: locale.T(lang, locale.KeyChooseKind),
		Buttons: [][]Button{{
			{Label: locale.T(lang, locale.KeyBtnVideo), Tag: TagVideo},
			{Label: locale.T(lang, locale.KeyBtnAudio), Tag: TagAudio},
		}},
	}, nil
}

// RequestMedia resolves the user's stored link and delivers the result
// through emit. A progress notice is emitted before resolution starts.
// Resolution failures become localized messages; a failed delivery is
// reported with the raw error detail. The stored link survives the request,
// so repeated downloads of the same submission work.
func (f *Flow) RequestMedia(ctx context.Context, userID int64, kind resolver.Kind, emit func(Reply) error) error {
	lang := f.lang(ctx, userID)

	target, err := f.sessions.PendingURL(ctx, userID)
	if errors.Is(err, session.ErrNoPendingURL) {
		return emit(Reply{Text: locale.T(lang, locale.KeyLinkFirst)})
	}
	if err != nil {
		return err
	}

	if err := emit(Reply{Text: locale.T(lang, locale.KeyDownloading)}); err != nil {
		return err
	}

	media, err := f.resolver.Resolve(ctx, target, kind)
	switch {
	case errors.Is(err, resolver.ErrNotFound):
		return emit(Reply{Text: locale.T(lang, locale.KeyNotFound)})
	case err != nil:
		return emit(Reply{Text: locale.T(lang, locale.KeyUpstreamFailed)})
	}

	delivery := Reply{Media: &Media{
		Kind:    kind,
		URL:     media.URL,
		Caption: locale.T(lang, locale.KeyDoneCaption, f.contact),
	}}
	if err := emit(delivery); err != nil {
		logger.Warn(ctx, "service.resolver", "deliver.failed",
			slog.Int64("user_id", userID),
			slog.String("kind", string(kind)),
			slog.String("err", err.Error()),
		)
		return emit(Reply{Text: locale.T(lang, locale.KeySendFailed, err.Error())})
	}
	return nil
}
