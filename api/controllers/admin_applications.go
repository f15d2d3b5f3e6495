package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leadflowhq/leadflow-backend/api/responses"
	"github.com/leadflowhq/leadflow-backend/api/validators"
	"github.com/leadflowhq/leadflow-backend/internal/applications"
	"github.com/leadflowhq/leadflow-backend/pkg/logger"
	"github.com/leadflowhq/leadflow-backend/pkg/pagination"
)

// UpdateStatusRequest is the admin status-transition body. The enum
// check happens in the service so unknown values map to BadRequest.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListApplications handles the admin listing endpoint with status and
// date filters.
func ListApplications(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParseQueryInt(r, "page", pagination.DefaultPage, 1, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), filter, pagination.Params{Page: page, Limit: limit})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// GetApplication handles the admin fetch-by-id endpoint.
func GetApplication(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		app, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, app)
	}
}

// UpdateApplicationStatus handles the admin status transition endpoint.
func UpdateApplicationStatus(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body UpdateStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateStatus(r.Context(), id, body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessMessage(w, "application status updated", updated)
	}
}

// GetStats handles the admin statistics endpoint.
func GetStats(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseDateFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stats, err := svc.Stats(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stats)
	}
}

func parseListFilter(r *http.Request) (applications.ListFilter, error) {
	filter, err := parseDateFilter(r)
	if err != nil {
		return filter, err
	}
	status, err := validators.ParseQueryStatus(r, "status")
	if err != nil {
		return filter, err
	}
	filter.Status = status
	return filter, nil
}

func parseDateFilter(r *http.Request) (applications.ListFilter, error) {
	var filter applications.ListFilter

	start, err := validators.ParseQueryDate(r, "startDate")
	if err != nil {
		return filter, err
	}
	end, err := validators.ParseQueryDate(r, "endDate")
	if err != nil {
		return filter, err
	}

	filter.StartDate = start
	filter.EndDate = end
	return filter, nil
}
