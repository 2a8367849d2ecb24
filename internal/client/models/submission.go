// Package models defines the console-side view of the backend's data:
// submissions, the stats snapshot and the closed status enumeration with
// its fixed rendering metadata.
package models

import "time"

type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusClosed    Status = "closed"
)

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusClosed:
		return true
	}
	return false
}

// Badge is the rendering metadata for a status.
type Badge struct {
	Label  string
	Marker string
}

// StatusBadges maps every status to its badge. The key set is closed;
// callers must not look up statuses outside the enumeration.
var StatusBadges = map[Status]Badge{
	StatusNew:       {Label: "new", Marker: "[!]"},
	StatusContacted: {Label: "contacted", Marker: "[~]"},
	StatusClosed:    {Label: "closed", Marker: "[x]"},
}

// Submission is one stored contact inquiry. The console only reads it and
// requests status changes; it never creates or deletes submissions.
type Submission struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	BusinessName string    `json:"business_name,omitempty"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Service      string    `json:"service,omitempty"`
	Message      string    `json:"message,omitempty"`
	Status       Status    `json:"status"`
	SpamScore    float64   `json:"spam_score"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ListResult is the listing endpoint's response envelope.
type ListResult struct {
	Submissions []Submission `json:"submissions"`
	Total       int          `json:"total"`
	Page        int          `json:"page"`
	Limit       int          `json:"limit"`
	TotalPages  int          `json:"total_pages"`
}

// ServiceCount is one entry of the popular-services breakdown.
type ServiceCount struct {
	Service string `json:"service"`
	Count   int    `json:"count"`
}

// Stats is the read-only aggregate fetched once at login.
type Stats struct {
	TotalSubmissions     int            `json:"total_submissions"`
	SubmissionsToday     int            `json:"submissions_today"`
	SubmissionsThisWeek  int            `json:"submissions_this_week"`
	SubmissionsThisMonth int            `json:"submissions_this_month"`
	StatusBreakdown      map[Status]int `json:"status_breakdown"`
	PopularServices      []ServiceCount `json:"popular_services"`
}

// ContactRequest is the public contact form payload.
type ContactRequest struct {
	Name         string `json:"name"`
	BusinessName string `json:"business_name,omitempty"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Service      string `json:"service,omitempty"`
	Message      string `json:"message,omitempty"`
}

// ContactResponse is the public endpoint's reply.
type ContactResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	SubmissionID string `json:"submission_id,omitempty"`
}
