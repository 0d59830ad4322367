package models

import (
	"time"
)

// Carrier is a discussion target; general, safety and rating threads all
// hang off the carrier record itself.
type Carrier struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	DOTNumber string    `gorm:"size:16;uniqueIndex" json:"dot_number"`
	MCNumber  string    `gorm:"size:16;index" json:"mc_number"`
	HomeState string    `gorm:"size:2" json:"home_state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RateSubmission struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CarrierID   uint      `gorm:"not null;index" json:"carrier_id"`
	Carrier     Carrier   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"carrier"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	OriginCity  string    `gorm:"size:80" json:"origin_city"`
	DestCity    string    `gorm:"size:80" json:"dest_city"`
	RateCents   int64     `gorm:"not null" json:"rate_cents"`
	LoadedMiles int       `json:"loaded_miles"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type InsuranceInfo struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CarrierID    uint      `gorm:"not null;index" json:"carrier_id"`
	Carrier      Carrier   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"carrier"`
	Provider     string    `gorm:"size:120;not null" json:"provider"`
	PolicyNumber string    `gorm:"size:64" json:"policy_number"`
	CoverageUSD  int64     `json:"coverage_usd"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
