package model

// NoTopService is reported when there are no submissions at all.
const NoTopService = "None"

// DashboardStats is derived on every request and never stored.
type DashboardStats struct {
	Total      int64  `json:"total"`
	ThisWeek   int64  `json:"thisWeek"`
	TopService string `json:"topService"`
}

// ServiceCount is one bucket of the per-service histogram.
type ServiceCount struct {
	Service string `db:"service" json:"service"`
	Count   int64  `db:"count"   json:"count"`
}

// TopService folds the histogram in its given order and keeps the first
// service whose count is strictly greater than the best seen so far.
func TopService(hist []ServiceCount) string {
	top := NoTopService
	var best int64
	for _, sc := range hist {
		if sc.Count > best {
			top = sc.Service
			best = sc.Count
		}
	}
	return top
}
