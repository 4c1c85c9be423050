package dto

import "time"

// UserIDsRequest is the body of bulk user operations.
type UserIDsRequest struct {
	UserIDs []uint `json:"user_ids" binding:"required,min=1"`
}

// UpdateSubscriptionRequest assigns a subscription to a teacher. A null
// subscription_id clears it.
type UpdateSubscriptionRequest struct {
	SubscriptionID *uint `json:"subscription_id"`
}

type UserResponse struct {
	ID          uint      `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	IsActive    bool      `json:"is_active"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	IsDeleted   bool      `json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
}

type StudentProfileResponse struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type SubscriptionResponse struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Duration int     `json:"duration"`
	Price    float64 `json:"price"`
}

type TeacherProfileResponse struct {
	ID                    uint                  `json:"id"`
	Subscription          *SubscriptionResponse `json:"subscription"`
	Status                *string               `json:"status"`
	SubscribedAt          *time.Time            `json:"subscribed_at"`
	IsExpiredSubscription bool                  `json:"is_expired_subscription"`
}

// UserDetailResponse is a user with whichever profiles it has.
type UserDetailResponse struct {
	UserResponse
	Student *StudentProfileResponse `json:"student"`
	Teacher *TeacherProfileResponse `json:"teacher"`
}
