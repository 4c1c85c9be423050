package model

import (
	"strings"
	"time"
)

type User struct {
	Base
	Email        string   `json:"email" gorm:"not null;uniqueIndex"`
	FirstName    string   `json:"first_name" gorm:"not null"`
	LastName     string   `json:"last_name" gorm:"not null"`
	PasswordHash string   `json:"-" gorm:"not null"`
	IsActive     bool     `json:"is_active" gorm:"not null;default:true"`
	IsStaff      bool     `json:"is_staff" gorm:"not null;default:false"`
	IsSuperuser  bool     `json:"is_superuser" gorm:"not null;default:false"`
	Student      *Student `json:"student,omitempty" gorm:"foreignKey:UserID"`
	Teacher      *Teacher `json:"teacher,omitempty" gorm:"foreignKey:UserID"`
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type Student struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt time.Time `json:"created_at"`
}

// Teacher.SubscribedAt is stamped when a subscription is first attached or
// replaced; it drives the expiry computation.
type Teacher struct {
	ID             uint                `gorm:"primarykey" json:"id"`
	UserID         uint                `json:"user_id" gorm:"not null;uniqueIndex"`
	User           *User               `json:"user,omitempty" gorm:"foreignKey:UserID"`
	SubscriptionID *uint               `json:"subscription_id,omitempty" gorm:"index"`
	Subscription   *Subscription       `json:"subscription,omitempty" gorm:"foreignKey:SubscriptionID"`
	StatusID       *uint               `json:"status_id,omitempty"`
	Status         *SubscriptionStatus `json:"status,omitempty" gorm:"foreignKey:StatusID"`
	SubscribedAt   *time.Time          `json:"subscribed_at,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}
