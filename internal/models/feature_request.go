package models

import "time"

type FeatureRequest struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submittedAt"`
	UserID      *int      `json:"userId"`
}
