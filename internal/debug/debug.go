// Package debug starts the Eino visual debugging plugin for inspecting
// orchestration graphs at runtime.
package debug

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/devops"
	"github.com/rs/zerolog/log"

	"github.com/redreef/alphaflow/internal/config"
)

// Start initializes the Eino devops plugin when debugging is enabled in the
// configuration. It is a no-op otherwise.
func Start(ctx context.Context, cfg *config.Config) error {
	if !cfg.EinoDebugEnabled {
		return nil
	}

	if err := devops.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize Eino debug plugin: %w", err)
	}

	log.Info().
		Str("url", fmt.Sprintf("http://localhost:%d", cfg.EinoDebugPort)).
		Msg("Eino debug server started")
	return nil
}
