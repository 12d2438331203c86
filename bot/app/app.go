// Package app assembles the bot: configuration, session storage, the media
// resolver, and the Telegram wiring.
package app

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"grabbot/bot/flow"
	"grabbot/bot/resolver"
	"grabbot/bot/session"
	"grabbot/core/bootstrap"
	coreconfig "grabbot/core/config"
	coredatabase "grabbot/core/database"
	coretelegram "grabbot/core/telegram"
	"grabbot/core/telegram/commands"
	"grabbot/core/telegram/router"
	tgsender "grabbot/core/telegram/sender"
	"grabbot/core/telegram/ui"
)

// App holds the assembled bot components.
type App struct {
	cfg      *Config
	flow     *flow.Flow
	sessions session.Store

	startedAt  time.Time
	dispatcher atomic.Pointer[tgsender.Dispatcher]
}

// New bootstraps infrastructure and builds the application. The database is
// only touched when the postgres session backend is selected.
func New(cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config provided")
	}

	var dbCfg *coredatabase.Config
	if cfg.Session.Backend == coreconfig.SessionBackendPostgres {
		dbCfg = &cfg.Database
	}

	res, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: dbCfg,
	})
	if err != nil {
		return nil, err
	}

	var store session.Store
	if res.DB != nil {
		store = session.NewPostgres(res.DB, cfg.Bot.DefaultLanguage)
	} else {
		store = session.NewMemory(cfg.Bot.DefaultLanguage)
	}

	client := resolver.New(cfg.Resolver)

	return &App{
		cfg:       cfg,
		flow:      flow.New(store, client, cfg.Bot.ContactHandle),
		sessions:  store,
		startedAt: time.Now(),
	}, nil
}

// TelegramRunOptions wires handlers into the shared Telegram runtime.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Start the bot",
	})
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     a.handleStats,
		Description: "Runtime statistics",
		AdminOnly:   true,
		Hidden:      true,
	})

	if err := a.registerCallbacks(reg); err != nil {
		return coretelegram.RunOptions{}, err
	}

	var fallbacks ui.FallbackProvider = a
	reg.SetTextFallback(fallbacks.UnknownText())
	reg.SetCallbackNotFound(fallbacks.UnknownCallback())

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: a.cfg.Telegram.AdminID,
	})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, router.TextRoutes(reg, router.TextOptions{
		UnknownDocument: fallbacks.UnknownDocument(),
	})...)

	return coretelegram.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg.CoreConfig(), nil),
		Routes:      routes,
		OnStart: func(ctx context.Context, rt coretelegram.Runtime) error {
			a.dispatcher.Store(rt.Dispatcher)
			return nil
		},
	}, nil
}
