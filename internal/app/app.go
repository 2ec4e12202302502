// Package app assembles a catalog session from configuration.
package app

import (
	"github.com/rs/zerolog"

	"github.com/agors/historiography/internal/core/service"
	"github.com/agors/historiography/internal/infrastructure/db/jsonfile"
	"github.com/agors/historiography/internal/pkg/config"
	"github.com/agors/historiography/internal/ui"
)

// New builds the stores, the services and the controller drawing on display.
func New(cfg *config.Config, display ui.Display, log zerolog.Logger) *ui.Controller {
	// --- Stores ---
	stores := jsonfile.Open(jsonfile.Config{Dir: cfg.DataDir}, log)

	// --- Services ---
	svc := ui.Services{
		Auth:     service.NewAuthService(stores.Accounts, cfg.AdminKey, log),
		Accounts: service.NewAccountService(stores.Accounts, log),
		Places:   service.NewPlaceService(stores.Places, log),
		Reviews:  service.NewReviewService(stores.Reviews, log),
	}

	return ui.NewController(display, svc, log, ui.Options{SuccessDelay: cfg.SuccessDelay})
}
