package controllers

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/multierr"

	"github.com/geocart/geocart-backend/api/responses"
	"github.com/geocart/geocart-backend/pkg/config"
	pkgerrors "github.com/geocart/geocart-backend/pkg/errors"
	"github.com/geocart/geocart-backend/pkg/logger"
)

// Pinger is anything that can answer a liveness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-GeoCart-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when both backing stores answer. All
// probes run so a single response surfaces every failing dependency.
func HealthReady(cfg *config.Config, db, cache Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-GeoCart-Env", cfg.App.Env)
		var errs []error
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				errs = append(errs, fmt.Errorf("database: %w", err))
			}
		}
		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				errs = append(errs, fmt.Errorf("redis: %w", err))
			}
		}
		if combined := multierr.Combine(errs...); combined != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "backing stores unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
