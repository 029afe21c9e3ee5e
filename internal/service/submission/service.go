package submission

import (
	"context"
	"time"

	"github.com/horsepowerelectrical/contact-api/internal/apperr"
	"github.com/horsepowerelectrical/contact-api/internal/metrics"
	"github.com/horsepowerelectrical/contact-api/internal/model"
	"github.com/horsepowerelectrical/contact-api/internal/repository"
	"github.com/horsepowerelectrical/contact-api/internal/util"
	"go.uber.org/zap"
)

const week = 7 * 24 * time.Hour

var (
	ErrMissingFields = apperr.Validation("missing required fields")
	ErrInvalidEmail  = apperr.Validation("invalid email format")
	ErrInvalidStatus = apperr.Validation("invalid status")
)

// Service validates contact form intake and serves the admin views over the
// row store. It keeps no state between calls.
type Service struct {
	repo repository.SubmissionsRepository
	log  *zap.Logger
	now  func() time.Time
}

// New constructs the submission service. A nil logger is replaced by a no-op.
func New(repo repository.SubmissionsRepository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log, now: time.Now}
}

// Submit validates draft and inserts it with status "new". Validation
// failures never reach the store.
func (s *Service) Submit(ctx context.Context, draft model.SubmissionDraft) (*model.Submission, error) {
	if draft.Name == "" || draft.Email == "" || draft.Service == "" || draft.Message == "" {
		metrics.SubmissionsTotal.WithLabelValues("rejected").Inc()
		return nil, ErrMissingFields
	}
	if !util.IsEmail(draft.Email) {
		metrics.SubmissionsTotal.WithLabelValues("rejected").Inc()
		return nil, ErrInvalidEmail
	}

	row := model.NewSubmission{
		Name:    draft.Name,
		Email:   draft.Email,
		Service: draft.Service,
		Message: draft.Message,
		Status:  model.StatusNew,
	}
	if draft.Phone != "" {
		phone := draft.Phone
		row.Phone = &phone
	}

	created, err := s.repo.Insert(ctx, row)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("failed").Inc()
		return nil, s.storeErr("insert", err)
	}

	metrics.SubmissionsTotal.WithLabelValues("accepted").Inc()
	s.log.Info("submission received",
		zap.Int64("id", created.ID),
		zap.String("service", created.Service),
	)
	return created, nil
}

// List returns every submission, newest first. The result is never nil on success.
func (s *Service) List(ctx context.Context) ([]model.Submission, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.storeErr("list", err)
	}
	if out == nil {
		out = []model.Submission{}
	}
	return out, nil
}

// UpdateStatus overwrites the status of one submission. An id that matches
// no row is not an error.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	st := model.SubmissionStatus(status)
	if !st.Valid() {
		return ErrInvalidStatus
	}

	n, err := s.repo.UpdateStatus(ctx, id, st)
	if err != nil {
		return s.storeErr("update_status", err)
	}

	metrics.StatusUpdatesTotal.WithLabelValues(st.String()).Inc()
	if n == 0 {
		s.log.Debug("status update matched no row", zap.Int64("id", id))
	}
	return nil
}

// Stats runs the three dashboard aggregates. Any failure discards the rest.
func (s *Service) Stats(ctx context.Context) (model.DashboardStats, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return model.DashboardStats{}, s.storeErr("count", err)
	}

	now := s.now()
	thisWeek, err := s.repo.CountCreatedBetween(ctx, now.Add(-week), now)
	if err != nil {
		return model.DashboardStats{}, s.storeErr("count_week", err)
	}

	hist, err := s.repo.ServiceHistogram(ctx)
	if err != nil {
		return model.DashboardStats{}, s.storeErr("service_histogram", err)
	}

	return model.DashboardStats{
		Total:      total,
		ThisWeek:   thisWeek,
		TopService: model.TopService(hist),
	}, nil
}

func (s *Service) storeErr(op string, err error) error {
	metrics.StoreErrorsTotal.WithLabelValues(op).Inc()
	s.log.Error("row store failed", zap.String("op", op), zap.Error(err))
	return apperr.Store(op, err)
}
