package fetchReport

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"bookingSync/internal/currency"
	"bookingSync/internal/lib/api/response"
	"bookingSync/internal/lib/logger/sl"
	"bookingSync/internal/report"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type ReportRequest struct {
	Currency string `validate:"required,alpha,len=3"`
}

type ReportResponse struct {
	response.Response
	Bookings                    []report.Row    `json:"bookings"`
	TotalPriceOriginalCurrency  decimal.Decimal `json:"totalPriceOriginalCurrency"`
	TotalPriceRequestedCurrency decimal.Decimal `json:"totalPriceRequestedCurrency"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ReportBuilder
type ReportBuilder interface {
	Build(req report.Request) (*report.Report, error)
}

// Date params accept a bare date or a full timestamp, matching what the
// upstream filter syntax allows.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func New(log *slog.Logger, builder ReportBuilder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.fetchReport.New"

		log = log.With(slog.String("op", op))

		req := ReportRequest{
			Currency: strings.ToUpper(r.URL.Query().Get("currency")),
		}

		if err := validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid currency param", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		start, err := parseDateParam(r, "date[gt]")
		if err != nil {
			log.Error("invalid date[gt] param", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid date[gt] param"))
			return
		}

		end, err := parseDateParam(r, "date[lt]")
		if err != nil {
			log.Error("invalid date[lt] param", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid date[lt] param"))
			return
		}

		rep, err := builder.Build(report.Request{
			Currency: req.Currency,
			Start:    start,
			End:      end,
		})
		if err != nil {
			switch {
			case errors.Is(err, currency.ErrUnknownCurrency):
				log.Warn("unknown currency requested", slog.String("currency", req.Currency))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(fmt.Sprintf("unknown currency: %s", req.Currency)))
			case errors.Is(err, report.ErrBadRange):
				log.Warn("invalid date range")
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("start time is after end time"))
			default:
				log.Error("failed to build report", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to build report"))
			}
			return
		}

		log.Info("report built",
			slog.String("currency", req.Currency),
			slog.Int("bookings", len(rep.Bookings)),
		)

		responseOK(w, r, rep)
	}
}

func parseDateParam(r *http.Request, name string) (*time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}

	return nil, fmt.Errorf("invalid date %q", value)
}

func responseOK(w http.ResponseWriter, r *http.Request, rep *report.Report) {
	render.JSON(w, r, ReportResponse{
		Response:                    response.OK(),
		Bookings:                    rep.Bookings,
		TotalPriceOriginalCurrency:  rep.TotalPriceOriginalCurrency,
		TotalPriceRequestedCurrency: rep.TotalPriceRequestedCurrency,
	})
}
