package controllers

import (
	"context"
	"net/http"

	"go.uber.org/multierr"

	"github.com/formosafoodlab/nightmarket-atlas/api/responses"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/config"
	pkgerrors "github.com/formosafoodlab/nightmarket-atlas/pkg/errors"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/logger"
)

// Pinger is any dependency whose liveness can be probed.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Nightmarket-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady probes each registered dependency and aggregates the
// failures; a nil entry (e.g. Redis not configured) is skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Nightmarket-Env", cfg.App.Env)

		var errs error
		status := map[string]string{}
		for name, dep := range deps {
			if dep == nil {
				status[name] = "disabled"
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				status[name] = "down"
				errs = multierr.Append(errs, err)
				continue
			}
			status[name] = "up"
		}

		if errs != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "dependency unavailable"))
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "dependencies": status})
	}
}
