package runSync

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"bookingSync/internal/lib/api/response"
	"bookingSync/internal/lib/logger/sl"
	"bookingSync/internal/sync"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

const (
	ModeFull        = "full"
	ModeIncremental = "incremental"
	ModeRefresh     = "refresh"
)

type SyncRequest struct {
	Mode string `json:"mode" validate:"required,oneof=full incremental refresh"`
}

type SyncResponse struct {
	response.Response
	Mode string `json:"mode"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=SyncRunner
type SyncRunner interface {
	FullSync(ctx context.Context) error
	IncrementalSync(ctx context.Context) error
	RefreshActive(ctx context.Context) error
}

// New triggers a sync run on demand. The run executes inline and shares
// the guard with the scheduled jobs, so a run already in flight answers
// with 409 instead of piling up.
func New(log *slog.Logger, runner SyncRunner, guard *sync.Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.runSync.New"

		log = log.With(slog.String("op", op))

		var req SyncRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		err = guard.TryRun(req.Mode, func() error {
			switch req.Mode {
			case ModeIncremental:
				return runner.IncrementalSync(r.Context())
			case ModeRefresh:
				return runner.RefreshActive(r.Context())
			default:
				return runner.FullSync(r.Context())
			}
		})
		if err != nil {
			if errors.Is(err, sync.ErrAlreadyRunning) {
				log.Warn("sync already running", slog.String("mode", req.Mode))
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("sync of this type is already running"))
				return
			}

			log.Error("sync failed", slog.String("mode", req.Mode), sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("sync failed"))
			return
		}

		log.Info("sync completed", slog.String("mode", req.Mode))

		responseOK(w, r, req.Mode)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, mode string) {
	render.JSON(w, r, SyncResponse{
		Response: response.OK(),
		Mode:     mode,
	})
}
