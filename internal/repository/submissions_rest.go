package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/horsepowerelectrical/contact-api/internal/model"
	"github.com/horsepowerelectrical/contact-api/internal/postgrest"
)

// Supabase caps every read at 1000 rows (API max-rows); reads page at that size.
const restPageSize = 1000

// RESTSubmissionsRepository keeps submissions in a Supabase project through
// its PostgREST API.
type RESTSubmissionsRepository struct {
	c        *postgrest.Client
	table    string
	pageSize int
}

func NewRESTSubmissionsRepository(c *postgrest.Client, table string) *RESTSubmissionsRepository {
	if table == "" {
		table = "contact_submissions"
	}
	return &RESTSubmissionsRepository{c: c, table: table, pageSize: restPageSize}
}

// readAll pages a GET with limit/offset. It stops once the exact count from
// Content-Range is reached, or on a short page when the count is missing. q
// must carry a total order so pages do not overlap.
func readAll[T any](ctx context.Context, r *RESTSubmissionsRepository, q url.Values) ([]T, error) {
	out := []T{}
	for {
		q.Set("limit", strconv.Itoa(r.pageSize))
		q.Set("offset", strconv.Itoa(len(out)))
		res, err := r.c.Do(ctx, postgrest.Request{
			Method: http.MethodGet,
			Table:  r.table,
			Query:  q,
			Prefer: "count=exact",
		})
		if err != nil {
			return nil, err
		}

		var page []T
		if err := json.Unmarshal(res.Body, &page); err != nil {
			return nil, err
		}
		out = append(out, page...)

		if len(page) == 0 {
			return out, nil
		}
		total, err := postgrest.ContentRangeTotal(res.Header.Get("Content-Range"))
		if err != nil {
			if len(page) < r.pageSize {
				return out, nil
			}
			continue
		}
		if int64(len(out)) >= total {
			return out, nil
		}
	}
}

func (r *RESTSubmissionsRepository) Insert(ctx context.Context, s model.NewSubmission) (*model.Submission, error) {
	res, err := r.c.Do(ctx, postgrest.Request{
		Method: http.MethodPost,
		Table:  r.table,
		Query:  url.Values{"select": {"*"}},
		Body:   s,
		Prefer: "return=representation",
	})
	if err != nil {
		return nil, err
	}

	var rows []model.Submission
	if err := json.Unmarshal(res.Body, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("insert returned no row")
	}
	return &rows[0], nil
}

func (r *RESTSubmissionsRepository) List(ctx context.Context) ([]model.Submission, error) {
	return readAll[model.Submission](ctx, r, url.Values{
		"select": {"*"},
		"order":  {"created_at.desc,id.desc"},
	})
}

func (r *RESTSubmissionsRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, url.Values{})
}

func (r *RESTSubmissionsRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return r.count(ctx, url.Values{
		"created_at": {
			"gte." + from.UTC().Format(time.RFC3339Nano),
			"lt." + to.UTC().Format(time.RFC3339Nano),
		},
	})
}

// count asks for an exact count without transferring rows.
func (r *RESTSubmissionsRepository) count(ctx context.Context, q url.Values) (int64, error) {
	q.Set("select", "id")
	res, err := r.c.Do(ctx, postgrest.Request{
		Method: http.MethodHead,
		Table:  r.table,
		Query:  q,
		Prefer: "count=exact",
	})
	if err != nil {
		return 0, err
	}
	return postgrest.ContentRangeTotal(res.Header.Get("Content-Range"))
}

type serviceRow struct {
	Service string `json:"service"`
}

// ServiceHistogram reads the service column in id order and folds it, since
// PostgREST has no GROUP BY.
func (r *RESTSubmissionsRepository) ServiceHistogram(ctx context.Context) ([]model.ServiceCount, error) {
	rows, err := readAll[serviceRow](ctx, r, url.Values{
		"select": {"service"},
		"order":  {"id.asc"},
	})
	if err != nil {
		return nil, err
	}

	out := []model.ServiceCount{}
	idx := make(map[string]int)
	for _, row := range rows {
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

func (r *RESTSubmissionsRepository) UpdateStatus(ctx context.Context, id int64, status model.SubmissionStatus) (int64, error) {
	res, err := r.c.Do(ctx, postgrest.Request{
		Method: http.MethodPatch,
		Table:  r.table,
		Query: url.Values{
			"id":     {"eq." + strconv.FormatInt(id, 10)},
			"select": {"id"},
		},
		Body:   map[string]model.SubmissionStatus{"status": status},
		Prefer: "return=representation",
	})
	if err != nil {
		return 0, err
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(res.Body, &rows); err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}
