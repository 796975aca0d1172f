package dto

type CreateFeatureRequestRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Priority    string `json:"priority" validate:"required"`
	UserID      *int   `json:"userId"`
}
