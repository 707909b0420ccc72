package controllers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/qwertymuzaffar/retail-backoffice/api/responses"
	"github.com/qwertymuzaffar/retail-backoffice/pkg/config"
	"github.com/qwertymuzaffar/retail-backoffice/pkg/db"
	pkgerrors "github.com/qwertymuzaffar/retail-backoffice/pkg/errors"
	"github.com/qwertymuzaffar/retail-backoffice/pkg/logger"
	"github.com/qwertymuzaffar/retail-backoffice/pkg/redis"
)

const readinessTimeout = 2 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "live", "env": cfg.App.Env})
	}
}

// HealthReady pings every hard dependency and aggregates failures.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		var err error
		if dbP != nil {
			err = multierr.Append(err, dbP.Ping(ctx))
		}
		if redisP != nil {
			err = multierr.Append(err, redisP.Ping(ctx))
		}

		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "readiness check failed"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready", "env": cfg.App.Env})
	}
}
