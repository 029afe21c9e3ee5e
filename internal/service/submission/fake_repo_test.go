package submission

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/horsepowerelectrical/contact-api/internal/model"
)

// memRepo is an in-memory SubmissionsRepository with per-operation failure injection.
type memRepo struct {
	mu     sync.Mutex
	rows   []model.Submission
	nextID int64
	clock  func() time.Time
	fail   map[string]error
	calls  map[string]int
}

func newMemRepo(clock func() time.Time) *memRepo {
	return &memRepo{clock: clock, fail: map[string]error{}, calls: map[string]int{}}
}

func (r *memRepo) enter(op string) error {
	r.calls[op]++
	return r.fail[op]
}

func (r *memRepo) Insert(_ context.Context, s model.NewSubmission) (*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("insert"); err != nil {
		return nil, err
	}
	r.nextID++
	row := model.Submission{
		ID:        r.nextID,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		Service:   s.Service,
		Message:   s.Message,
		CreatedAt: r.clock(),
		Status:    s.Status,
	}
	r.rows = append(r.rows, row)
	return &row, nil
}

func (r *memRepo) List(_ context.Context) ([]model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("list"); err != nil {
		return nil, err
	}
	out := append([]model.Submission(nil), r.rows...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("count"); err != nil {
		return 0, err
	}
	return int64(len(r.rows)), nil
}

func (r *memRepo) CountCreatedBetween(_ context.Context, from, to time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("count_between"); err != nil {
		return 0, err
	}
	var n int64
	for _, row := range r.rows {
		if !row.CreatedAt.Before(from) && row.CreatedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

func (r *memRepo) ServiceHistogram(_ context.Context) ([]model.ServiceCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("histogram"); err != nil {
		return nil, err
	}
	out := []model.ServiceCount{}
	idx := map[string]int{}
	for _, row := range r.rows {
		i, ok := idx[row.Service]
		if !ok {
			idx[row.Service] = len(out)
			out = append(out, model.ServiceCount{Service: row.Service, Count: 1})
			continue
		}
		out[i].Count++
	}
	return out, nil
}

func (r *memRepo) UpdateStatus(_ context.Context, id int64, status model.SubmissionStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("update"); err != nil {
		return 0, err
	}
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].Status = status
			return 1, nil
		}
	}
	return 0, nil
}

func (r *memRepo) get(id int64) (model.Submission, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			return row, true
		}
	}
	return model.Submission{}, false
}
