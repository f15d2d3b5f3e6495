package applications

import (
	"time"

	"github.com/leadflowhq/leadflow-backend/pkg/db/models"
	"github.com/leadflowhq/leadflow-backend/pkg/enums"
	"github.com/leadflowhq/leadflow-backend/pkg/pagination"
)

// ApplicationDTO is the transport shape of a single lead.
type ApplicationDTO struct {
	ID          int64                   `json:"id"`
	Name        string                  `json:"name"`
	Phone       string                  `json:"phone"`
	Email       *string                 `json:"email"`
	Comment     *string                 `json:"comment"`
	Status      enums.ApplicationStatus `json:"status"`
	UTMSource   *string                 `json:"utm_source"`
	UTMMedium   *string                 `json:"utm_medium"`
	UTMCampaign *string                 `json:"utm_campaign"`
	IPAddress   *string                 `json:"ip_address"`
	UserAgent   *string                 `json:"user_agent"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// ListResult pairs one page of leads with its pagination block.
type ListResult struct {
	Applications []ApplicationDTO    `json:"applications"`
	Pagination   pagination.PageInfo `json:"pagination"`
}

// StatsDTO reports per-status lead counts for an optional date window.
type StatsDTO struct {
	New        int64 `json:"new"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
	Rejected   int64 `json:"rejected"`
	Total      int64 `json:"total"`
}

// CreateApplicationInput holds the validated public intake payload.
type CreateApplicationInput struct {
	Name        string
	Phone       string
	Email       *string
	Comment     *string
	UTMSource   *string
	UTMMedium   *string
	UTMCampaign *string
}

// ClientMeta carries request provenance recorded alongside the lead.
type ClientMeta struct {
	IPAddress *string
	UserAgent *string
}

// ListFilter narrows the admin listing and stats queries.
type ListFilter struct {
	Status    *enums.ApplicationStatus
	StartDate *time.Time
	EndDate   *time.Time
}

func FromModel(app *models.Application) *ApplicationDTO {
	if app == nil {
		return nil
	}

	return &ApplicationDTO{
		ID:          app.ID,
		Name:        app.Name,
		Phone:       app.Phone,
		Email:       app.Email,
		Comment:     app.Comment,
		Status:      app.Status,
		UTMSource:   app.UTMSource,
		UTMMedium:   app.UTMMedium,
		UTMCampaign: app.UTMCampaign,
		IPAddress:   app.IPAddress,
		UserAgent:   app.UserAgent,
		CreatedAt:   app.CreatedAt,
		UpdatedAt:   app.UpdatedAt,
	}
}

func fromModels(rows []models.Application) []ApplicationDTO {
	out := make([]ApplicationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
