package submission

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/horsepowerelectrical/contact-api/internal/apperr"
	"github.com/horsepowerelectrical/contact-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestService() (*Service, *memRepo, *clock) {
	clk := &clock{t: time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)}
	repo := newMemRepo(clk.now)
	svc := New(repo, nil)
	svc.now = clk.now
	return svc, repo, clk
}

func validDraft() model.SubmissionDraft {
	return model.SubmissionDraft{Name: "Jo", Email: "jo@x.com", Service: "Wiring", Message: "Hi"}
}

func TestSubmitMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *model.SubmissionDraft)
	}{
		{"no name", func(d *model.SubmissionDraft) { d.Name = "" }},
		{"no email", func(d *model.SubmissionDraft) { d.Email = "" }},
		{"no service", func(d *model.SubmissionDraft) { d.Service = "" }},
		{"no message", func(d *model.SubmissionDraft) { d.Message = "" }},
		{"all empty", func(d *model.SubmissionDraft) { *d = model.SubmissionDraft{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestService()
			d := validDraft()
			tt.mutate(&d)

			_, err := svc.Submit(context.Background(), d)
			require.ErrorIs(t, err, ErrMissingFields)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			assert.Zero(t, repo.calls["insert"])
		})
	}
}

func TestSubmitEmailFormat(t *testing.T) {
	for _, email := range []string{"not-an-email", "a@b", "@b.com", "a b@c.com", "a@b.", "a@@b.com"} {
		t.Run(email, func(t *testing.T) {
			svc, repo, _ := newTestService()
			d := validDraft()
			d.Email = email

			_, err := svc.Submit(context.Background(), d)
			require.ErrorIs(t, err, ErrInvalidEmail)
			assert.Zero(t, repo.calls["insert"])
		})
	}

	svc, _, _ := newTestService()
	d := validDraft()
	d.Email = "a@b.co"
	_, err := svc.Submit(context.Background(), d)
	assert.NoError(t, err)
}

func TestSubmitWithoutPhone(t *testing.T) {
	svc, _, clk := newTestService()

	got, err := svc.Submit(context.Background(), validDraft())
	require.NoError(t, err)

	assert.Nil(t, got.Phone)
	assert.Equal(t, model.StatusNew, got.Status)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, clk.t, got.CreatedAt)
}

func TestSubmitWithPhone(t *testing.T) {
	svc, _, _ := newTestService()
	d := validDraft()
	d.Phone = "555-0100"

	got, err := svc.Submit(context.Background(), d)
	require.NoError(t, err)
	require.NotNil(t, got.Phone)
	assert.Equal(t, "555-0100", *got.Phone)
}

func TestSubmitStoreError(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.fail["insert"] = errors.New("duplicate key value")

	got, err := svc.Submit(context.Background(), validDraft())
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Equal(t, apperr.KindStore, apperr.KindOf(err))
	assert.Equal(t, "duplicate key value", apperr.Message(err))
}

func TestListNewestFirst(t *testing.T) {
	svc, _, clk := newTestService()

	var ids []int64
	for _, name := range []string{"A", "B", "C"} {
		d := validDraft()
		d.Name = name
		got, err := svc.Submit(context.Background(), d)
		require.NoError(t, err)
		ids = append(ids, got.ID)
		clk.advance(time.Minute)
	}

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "C", list[0].Name)
	assert.Equal(t, "B", list[1].Name)
	assert.Equal(t, "A", list[2].Name)
}

func TestListEmpty(t *testing.T) {
	svc, _, _ := newTestService()

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestListStoreError(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.fail["list"] = errors.New("timeout")

	list, err := svc.List(context.Background())
	assert.Nil(t, list)
	assert.Equal(t, apperr.KindStore, apperr.KindOf(err))
}

func TestUpdateStatusSequence(t *testing.T) {
	svc, repo, _ := newTestService()
	created, err := svc.Submit(context.Background(), validDraft())
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(context.Background(), created.ID, "read"))
	require.NoError(t, svc.UpdateStatus(context.Background(), created.ID, "processed"))

	row, ok := repo.get(created.ID)
	require.True(t, ok)
	assert.Equal(t, model.StatusProcessed, row.Status)
	assert.Equal(t, created.CreatedAt, row.CreatedAt)
	assert.Equal(t, created.ID, row.ID)
}

func TestUpdateStatusIdempotent(t *testing.T) {
	svc, repo, _ := newTestService()
	created, err := svc.Submit(context.Background(), validDraft())
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(context.Background(), created.ID, "read"))
	first, _ := repo.get(created.ID)
	require.NoError(t, svc.UpdateStatus(context.Background(), created.ID, "read"))
	second, _ := repo.get(created.ID)

	assert.Equal(t, first, second)
}

func TestUpdateStatusInvalid(t *testing.T) {
	svc, repo, _ := newTestService()

	for _, st := range []string{"bogus", "", "NEW", "Read"} {
		err := svc.UpdateStatus(context.Background(), 1, st)
		require.ErrorIs(t, err, ErrInvalidStatus, st)
	}
	assert.Zero(t, repo.calls["update"])
}

func TestUpdateStatusUnknownIDIsNoop(t *testing.T) {
	svc, repo, _ := newTestService()
	_, err := svc.Submit(context.Background(), validDraft())
	require.NoError(t, err)

	assert.NoError(t, svc.UpdateStatus(context.Background(), 999, "processed"))
	row, _ := repo.get(1)
	assert.Equal(t, model.StatusNew, row.Status)
}

func TestUpdateStatusStoreError(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.fail["update"] = errors.New("connection refused")

	err := svc.UpdateStatus(context.Background(), 1, "read")
	assert.Equal(t, apperr.KindStore, apperr.KindOf(err))
	assert.Equal(t, "connection refused", apperr.Message(err))
}

func TestStatsEmpty(t *testing.T) {
	svc, _, _ := newTestService()

	got, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DashboardStats{Total: 0, ThisWeek: 0, TopService: "None"}, got)
}

func TestStatsTopService(t *testing.T) {
	svc, _, _ := newTestService()
	for _, service := range []string{"B", "A", "A", "B", "A"} {
		d := validDraft()
		d.Service = service
		_, err := svc.Submit(context.Background(), d)
		require.NoError(t, err)
	}

	got, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Total)
	assert.Equal(t, "A", got.TopService)
}

func TestStatsTieGoesToFirstInserted(t *testing.T) {
	svc, _, _ := newTestService()
	for _, service := range []string{"Panel", "EV", "EV", "Panel"} {
		d := validDraft()
		d.Service = service
		_, err := svc.Submit(context.Background(), d)
		require.NoError(t, err)
	}

	got, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Panel", got.TopService)
}

func TestStatsThisWeekWindow(t *testing.T) {
	svc, _, clk := newTestService()

	// 8 days before the query time: outside
	_, err := svc.Submit(context.Background(), validDraft())
	require.NoError(t, err)

	// exactly 7 days before the query time: inside (window start is inclusive)
	clk.advance(24 * time.Hour)
	_, err = svc.Submit(context.Background(), validDraft())
	require.NoError(t, err)

	clk.advance(6 * 24 * time.Hour)
	_, err = svc.Submit(context.Background(), validDraft())
	require.NoError(t, err)

	clk.advance(24 * time.Hour)
	got, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Total)
	assert.Equal(t, int64(2), got.ThisWeek)
}

func TestStatsAllOrNothing(t *testing.T) {
	for _, op := range []string{"count", "count_between", "histogram"} {
		t.Run(op, func(t *testing.T) {
			svc, repo, _ := newTestService()
			_, err := svc.Submit(context.Background(), validDraft())
			require.NoError(t, err)
			repo.fail[op] = errors.New(op + " failed")

			got, err := svc.Stats(context.Background())
			require.Error(t, err)
			assert.Equal(t, apperr.KindStore, apperr.KindOf(err))
			assert.Equal(t, model.DashboardStats{}, got)
		})
	}
}
