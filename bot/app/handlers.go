package app

import (
	"errors"
	"fmt"
	"time"

	tele "gopkg.in/telebot.v4"

	"grabbot/bot/flow"
	"grabbot/bot/locale"
	"grabbot/bot/resolver"
	"grabbot/bot/session"
	"grabbot/core/buildinfo"
	"grabbot/core/logger"
	coretelegram "grabbot/core/telegram"
	tghelpers "grabbot/core/telegram/helpers"
	"grabbot/core/telegram/keyboard"
)

func (a *App) registerCallbacks(reg *coretelegram.Registry) error {
	for _, code := range locale.Supported() {
		code := code
		if err := reg.RegisterCallback(flow.LangTag(code), func(c tele.Context) error {
			return a.handleLanguage(c, code)
		}); err != nil {
			return err
		}
	}

	callbacks := map[string]tele.HandlerFunc{
		flow.TagDownload: a.handleDownload,
		flow.TagPremium:  a.handlePremium,
		flow.TagAds:      a.handleAds,
		flow.TagVideo:    a.handleMedia(resolver.KindVideo),
		flow.TagAudio:    a.handleMedia(resolver.KindAudio),
	}
	for key, h := range callbacks {
		if err := reg.RegisterCallback(key, h); err != nil {
			return err
		}
	}
	return nil
}

func markupFor(buttons [][]flow.Button) *tele.ReplyMarkup {
	if len(buttons) == 0 {
		return nil
	}
	rows := make([][]keyboard.InlineBtn, 0, len(buttons))
	for _, row := range buttons {
		r := make([]keyboard.InlineBtn, 0, len(row))
		for _, b := range row {
			r = append(r, keyboard.InlineBtn{Text: b.Label, Unique: b.Tag})
		}
		rows = append(rows, r)
	}
	return keyboard.InlineButtonsRows(rows...)
}

// reply sends text replies through the async sender. Edits and media go out
// synchronously so their ordering relative to each other is preserved.
func (a *App) reply(c tele.Context, r flow.Reply) error {
	if r.Media != nil || r.Edit {
		return a.replySync(c, r)
	}
	if markup := markupFor(r.Buttons); markup != nil {
		return tghelpers.SendText(c, r.Text, &tele.SendOptions{ReplyMarkup: markup})
	}
	return tghelpers.SendText(c, r.Text)
}

// replySync delivers a reply on the calling goroutine.
func (a *App) replySync(c tele.Context, r flow.Reply) error {
	if r.Media != nil {
		return c.Send(mediaSendable(r.Media))
	}
	markup := markupFor(r.Buttons)
	if r.Edit {
		if markup != nil {
			return tghelpers.EditOrSendText(c, r.Text, markup)
		}
		return tghelpers.EditOrSendText(c, r.Text)
	}
	if markup != nil {
		return c.Send(r.Text, markup)
	}
	return c.Send(r.Text)
}

func mediaSendable(m *flow.Media) interface{} {
	if m.Kind == resolver.KindAudio {
		return &tele.Audio{File: tele.FromURL(m.URL), Caption: m.Caption}
	}
	return &tele.Video{File: tele.FromURL(m.URL), Caption: m.Caption}
}

func (a *App) handleStart(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	return a.reply(c, a.flow.Start(ctx))
}

func (a *App) handleLanguage(c tele.Context, code string) error {
	ctx := tghelpers.BuildContext(c)
	r, err := a.flow.SelectLanguage(ctx, c.Sender().ID, code)
	if errors.Is(err, session.ErrUnknownLanguage) {
		return nil
	}
	if err != nil {
		return err
	}
	return a.reply(c, r)
}

func (a *App) handleDownload(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	return a.reply(c, a.flow.Download(ctx, c.Sender().ID))
}

func (a *App) handlePremium(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	return a.reply(c, a.flow.Premium(ctx, c.Sender().ID))
}

func (a *App) handleAds(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	return a.reply(c, a.flow.Ads(ctx, c.Sender().ID))
}

func (a *App) handleText(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	r, err := a.flow.SubmitURL(ctx, c.Sender().ID, c.Text())
	if err != nil {
		return err
	}
	return a.reply(c, r)
}

func (a *App) handleDocument(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	return a.reply(c, a.flow.RejectAttachment(ctx, c.Sender().ID))
}

func (a *App) handleMedia(kind resolver.Kind) tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := tghelpers.BuildContext(c)
		return a.flow.RequestMedia(ctx, c.Sender().ID, kind, func(r flow.Reply) error {
			return a.replySync(c, r)
		})
	}
}

// UnknownText implements ui.FallbackProvider: free text is treated as a link
// submission.
func (a *App) UnknownText() tele.HandlerFunc {
	return a.handleText
}

// UnknownDocument implements ui.FallbackProvider.
func (a *App) UnknownDocument() tele.HandlerFunc {
	return a.handleDocument
}

// UnknownCallback implements ui.FallbackProvider: unrecognized selection tags
// produce no transition and no reply.
func (a *App) UnknownCallback() tele.HandlerFunc {
	return func(tele.Context) error { return nil }
}

func (a *App) handleStats(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	count, err := a.sessions.Count(ctx)
	if err != nil {
		logger.Warn(ctx, "service.sessions", "session.count_failed")
		count = -1
	}

	var senderErrs uint64
	if d := a.dispatcher.Load(); d != nil {
		senderErrs = d.ErrorCount()
	}

	text := fmt.Sprintf(
		"sessions: %d\nsender errors: %d\nuptime: %s\nbuild: %s (%s)",
		count,
		senderErrs,
		time.Since(a.startedAt).Round(time.Second),
		buildinfo.Version,
		buildinfo.Commit,
	)
	return tghelpers.SendText(c, text)
}
