package applications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/leadflowhq/leadflow-backend/pkg/db/models"
	"github.com/leadflowhq/leadflow-backend/pkg/enums"
	pkgerrors "github.com/leadflowhq/leadflow-backend/pkg/errors"
	"github.com/leadflowhq/leadflow-backend/pkg/logger"
	"github.com/leadflowhq/leadflow-backend/pkg/pagination"
)

// Notifier receives a lead after it is persisted. Delivery is best
// effort and must never fail the intake request.
type Notifier interface {
	NotifyApplication(ctx context.Context, app *models.Application)
}

// Service exposes lead intake and administration operations.
type Service interface {
	Create(ctx context.Context, input CreateApplicationInput, meta ClientMeta) (*ApplicationDTO, error)
	List(ctx context.Context, filter ListFilter, params pagination.Params) (*ListResult, error)
	Get(ctx context.Context, id int64) (*ApplicationDTO, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*ApplicationDTO, error)
	Stats(ctx context.Context, filter ListFilter) (*StatsDTO, error)
}

type service struct {
	repo     *Repository
	notifier Notifier
	logg     *logger.Logger

	// notifyTimeout bounds the background delivery goroutine.
	notifyTimeout time.Duration
}

// NewService constructs an applications service. notifier may be nil
// when no notification channel is configured.
func NewService(repo *Repository, notifier Notifier, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("applications repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:          repo,
		notifier:      notifier,
		logg:          logg,
		notifyTimeout: 15 * time.Second,
	}, nil
}

// Create persists a new lead. The stored status is always "new"
// regardless of anything the caller submitted, and notification
// delivery runs in the background after the row is committed.
func (s *service) Create(ctx context.Context, input CreateApplicationInput, meta ClientMeta) (*ApplicationDTO, error) {
	app := &models.Application{
		Name:        input.Name,
		Phone:       input.Phone,
		Email:       input.Email,
		Comment:     input.Comment,
		Status:      enums.ApplicationStatusNew,
		UTMSource:   input.UTMSource,
		UTMMedium:   input.UTMMedium,
		UTMCampaign: input.UTMCampaign,
		IPAddress:   meta.IPAddress,
		UserAgent:   meta.UserAgent,
	}

	created, err := s.repo.Create(ctx, app)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: insert application")
	}

	if s.notifier != nil {
		// Detached from the request context so client disconnects do
		// not cancel delivery.
		notifyCtx := s.logg.WithField(context.Background(), "application_id", created.ID)
		go func() {
			ctx, cancel := context.WithTimeout(notifyCtx, s.notifyTimeout)
			defer cancel()
			s.notifier.NotifyApplication(ctx, created)
		}()
	}

	return FromModel(created), nil
}

// List returns one page of leads plus pagination metadata.
func (s *service) List(ctx context.Context, filter ListFilter, params pagination.Params) (*ListResult, error) {
	params = params.Normalize()

	rows, total, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: list applications")
	}

	return &ListResult{
		Applications: fromModels(rows),
		Pagination:   pagination.NewPageInfo(params, total),
	}, nil
}

// Get loads a single lead by id.
func (s *service) Get(ctx context.Context, id int64) (*ApplicationDTO, error) {
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "application not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: load application")
	}
	return FromModel(app), nil
}

// UpdateStatus applies a status transition. Any status may move to any
// other status; only unknown values are rejected.
func (s *service) UpdateStatus(ctx context.Context, id int64, status string) (*ApplicationDTO, error) {
	parsed, err := enums.ParseApplicationStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}

	updated, err := s.repo.UpdateStatus(ctx, id, parsed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "application not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: update application status")
	}
	return FromModel(updated), nil
}

// Stats aggregates lead counts per status for an optional date window.
// Statuses with no matching rows report zero.
func (s *service) Stats(ctx context.Context, filter ListFilter) (*StatsDTO, error) {
	filter.Status = nil

	counts, err := s.repo.CountByStatus(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "db: count applications")
	}

	stats := &StatsDTO{
		New:        counts[enums.ApplicationStatusNew],
		InProgress: counts[enums.ApplicationStatusInProgress],
		Completed:  counts[enums.ApplicationStatusCompleted],
		Rejected:   counts[enums.ApplicationStatusRejected],
	}
	stats.Total = stats.New + stats.InProgress + stats.Completed + stats.Rejected
	return stats, nil
}
