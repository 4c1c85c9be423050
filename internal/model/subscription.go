package model

type Subscription struct {
	Base
	Name     string  `json:"name" gorm:"not null;uniqueIndex"`
	Duration int     `json:"duration" gorm:"not null"` // months
	Price    float64 `json:"price" gorm:"not null;default:0"`
}

type SubscriptionStatus struct {
	Base
	Name string `json:"name" gorm:"not null;uniqueIndex"`
}

// DefaultSubscriptionStatusID is assigned the first time a teacher receives a subscription.
const DefaultSubscriptionStatusID uint = 1
