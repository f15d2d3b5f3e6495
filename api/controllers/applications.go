package controllers

import (
	"net/http"
	"strings"

	"github.com/leadflowhq/leadflow-backend/api/middleware"
	"github.com/leadflowhq/leadflow-backend/api/responses"
	"github.com/leadflowhq/leadflow-backend/api/validators"
	"github.com/leadflowhq/leadflow-backend/internal/applications"
	"github.com/leadflowhq/leadflow-backend/pkg/logger"
)

// CreateApplicationRequest is the public intake body. Status and
// provenance are not accepted from the client.
type CreateApplicationRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Phone       string  `json:"phone" validate:"required,max=20,phone"`
	Email       *string `json:"email" validate:"omitempty,email,max=100"`
	Comment     *string `json:"comment" validate:"omitempty,max=1000"`
	UTMSource   *string `json:"utm_source" validate:"omitempty,max=100"`
	UTMMedium   *string `json:"utm_medium" validate:"omitempty,max=100"`
	UTMCampaign *string `json:"utm_campaign" validate:"omitempty,max=100"`
}

func (req CreateApplicationRequest) toInput() applications.CreateApplicationInput {
	email := validators.SanitizeOptional(req.Email, 100)
	if email != nil {
		lowered := strings.ToLower(*email)
		email = &lowered
	}
	return applications.CreateApplicationInput{
		Name:        validators.SanitizeString(req.Name, 100),
		Phone:       validators.SanitizeString(req.Phone, 20),
		Email:       email,
		Comment:     validators.SanitizeOptional(req.Comment, 1000),
		UTMSource:   validators.SanitizeOptional(req.UTMSource, 100),
		UTMMedium:   validators.SanitizeOptional(req.UTMMedium, 100),
		UTMCampaign: validators.SanitizeOptional(req.UTMCampaign, 100),
	}
}

// CreateApplication handles the public lead intake endpoint.
func CreateApplication(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body CreateApplicationRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		meta := applications.ClientMeta{}
		if ip := middleware.ClientIP(r); ip != "" {
			if len(ip) > 45 {
				ip = ip[:45]
			}
			meta.IPAddress = &ip
		}
		if ua := r.UserAgent(); ua != "" {
			meta.UserAgent = &ua
		}

		created, err := svc.Create(r.Context(), body.toInput(), meta)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}
