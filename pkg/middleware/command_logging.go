package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"photo_album/pkg/metrics"
)

// RunE is the cobra command body signature.
type RunE func(cmd *cobra.Command, args []string) error

// CommandLogger wraps a command body so it runs with a command-scoped
// logger on its context and is counted in reg.
func CommandLogger(reg *metrics.Registry, next RunE) RunE {
	return func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		rid := uuid.NewString()

		// Attach command-scoped logger
		logger := log.With().
			Str("run_id", rid).
			Str("command", cmd.Name()).
			Logger()

		ctx := logger.WithContext(cmd.Context())
		cmd.SetContext(ctx)

		err := next(cmd, args)
		duration := time.Since(start)

		status := "ok"
		if err != nil {
			status = "error"
		}
		reg.Inc(ctx, "commands_total", metrics.Labels{
			"command": cmd.Name(),
			"status":  status,
		}, 1)

		if err != nil {
			logger.Error().
				Err(err).
				Dur("duration", duration).
				Msg("command failed")
		} else {
			logger.Debug().
				Dur("duration", duration).
				Msg("command finished")
		}
		return err
	}
}
