// Package models defines the server-side domain types for contact-form
// submissions and their aggregate statistics.
package models

import "time"

// Status is the triage state of a submission. The set is closed; anything
// else is rejected at the API boundary.
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusClosed    Status = "closed"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusClosed:
		return true
	}
	return false
}

// Services a visitor can pick on the contact form. Unknown values are
// coerced to "Other" rather than rejected, matching the public form.
var AllowedServices = []string{
	"Facebook & Instagram Marketing",
	"TikTok Marketing",
	"Google & Google Maps Marketing",
	"Website Creation",
	"Full Package (All Services)",
	"Consultation Only",
	"Other",
}

// NormalizeService maps a free-form service value onto the catalog.
// Empty stays empty; anything not in the catalog becomes "Other".
func NormalizeService(service string) string {
	if service == "" {
		return ""
	}
	for _, s := range AllowedServices {
		if s == service {
			return service
		}
	}
	return "Other"
}

// Submission is one stored contact inquiry.
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
	IPAddress    string    `json:"-"`
	UserAgent    string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ListOptions carries the filter and pagination parameters for listing.
// Empty Search/Status mean "no filter".
type ListOptions struct {
	Search string
	Status Status
	Limit  int
	Offset int
}
