package model

import "time"

// User is the authenticated account as known to the backend.
type User struct {
	CreatedAt time.Time `json:"created_at"`
	FullName  *string   `json:"full_name"`
	ID        string    `json:"id"`
	ClerkID   string    `json:"clerk_id"`
	Email     string    `json:"email"`
	PlanTier  string    `json:"plan_tier"`
}

// DisplayName returns the full name, falling back to "User".
func (u User) DisplayName() string {
	if u.FullName == nil || *u.FullName == "" {
		return "User"
	}
	return *u.FullName
}

// UsageSummary holds the per-user activity counters.
type UsageSummary struct {
	SearchesToday         int `json:"searches_today"`
	SearchesThisMonth     int `json:"searches_this_month"`
	ProfileViewsToday     int `json:"profile_views_today"`
	ProfileViewsThisMonth int `json:"profile_views_this_month"`
}

// Health is the backend liveness report.
type Health struct {
	Status  string `json:"status"`
	DB      string `json:"db"`
	Version string `json:"version"`
}

// OK reports whether the backend and its database are up.
func (h Health) OK() bool {
	return h.Status == "ok" && h.DB == "connected"
}
