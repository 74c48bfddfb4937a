package users

import "time"

// User is a persisted account row. PlanTier is the billing-side source of
// truth that gets stamped into token metadata at login.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	PictureURL string    `json:"pictureUrl"`
	PlanTier   string    `json:"planTier"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
