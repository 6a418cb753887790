package domain

import "time"

// Roles assigned to users. Admin unlocks the dashboard and catalog writes.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents a registered shopper identified by phone number.
type User struct {
	ID           string    `json:"id"`
	CountryCode  string    `json:"countryCode"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	Role         string    `json:"role"`
	Verified     bool      `json:"verified"`
	Theme        string    `json:"theme,omitempty"`
	Locale       string    `json:"locale,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`

	// One-time verification code state; never serialized to clients.
	VerificationCode      string     `json:"-"`
	VerificationExpiresAt *time.Time `json:"-"`
}
