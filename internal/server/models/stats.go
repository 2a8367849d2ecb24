package models

// ServiceCount is one row of the service popularity breakdown.
type ServiceCount struct {
	Service string `json:"service"`
	Count   int    `json:"count"`
}

// Stats is the aggregate snapshot served to the admin dashboard.
// It is computed on demand; there is no incremental bookkeeping.
type Stats struct {
	TotalSubmissions     int            `json:"total_submissions"`
	SubmissionsToday     int            `json:"submissions_today"`
	SubmissionsThisWeek  int            `json:"submissions_this_week"`
	SubmissionsThisMonth int            `json:"submissions_this_month"`
	StatusBreakdown      map[Status]int `json:"status_breakdown"`
	PopularServices      []ServiceCount `json:"popular_services"`
}
