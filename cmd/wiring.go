package cmd

import (
	"github.com/habedi/curex/auth"
	"github.com/habedi/curex/client"
	"github.com/habedi/curex/config"
	"github.com/habedi/curex/db"
)

// services bundles the pieces a command needs to talk to the
// remote API with a managed access token.
type services struct {
	settings config.Settings
	tokens   *auth.Service
	sessions *client.SessionFactory
}

func buildServices() *services {
	settings := config.Load()

	base := client.Configuration{
		Host:           settings.Host,
		Username:       settings.Username,
		Password:       settings.Password,
		RequestTimeout: settings.RequestTimeout,
	}

	repo := db.NewTokenRepository(db.GetDB())
	exchanger := client.NewExchanger(client.NewAuthSessionFactory(base))
	tokens := auth.NewService(repo, exchanger, settings.Username, settings.Password)
	sessions := client.NewSessionFactory(base, tokens)

	return &services{
		settings: settings,
		tokens:   tokens,
		sessions: sessions,
	}
}
