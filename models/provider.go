package models

import "time"

// DayAvailability is one weekday in a provider's availability grid.
type DayAvailability struct {
	Start     string `bson:"start" json:"start"`
	End       string `bson:"end" json:"end"`
	Available bool   `bson:"available" json:"available"`
}

// WeeklyAvailability is displayed to customers; it is never checked against bookings.
type WeeklyAvailability struct {
	Monday    DayAvailability `bson:"monday" json:"monday"`
	Tuesday   DayAvailability `bson:"tuesday" json:"tuesday"`
	Wednesday DayAvailability `bson:"wednesday" json:"wednesday"`
	Thursday  DayAvailability `bson:"thursday" json:"thursday"`
	Friday    DayAvailability `bson:"friday" json:"friday"`
	Saturday  DayAvailability `bson:"saturday" json:"saturday"`
	Sunday    DayAvailability `bson:"sunday" json:"sunday"`
}

// ProviderLocation is where a provider operates.
type ProviderLocation struct {
	City        string       `bson:"city" json:"city"`
	State       string       `bson:"state" json:"state"`
	Pincode     string       `bson:"pincode" json:"pincode"`
	Coordinates *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

// ProviderDocument is a license or certificate uploaded elsewhere.
type ProviderDocument struct {
	Type     string `bson:"type" json:"type"`
	URL      string `bson:"url" json:"url"`
	Verified bool   `bson:"verified" json:"verified"`
}

// RatingSummary is the cached aggregate of all reviews for a provider.
type RatingSummary struct {
	Average float64 `bson:"average" json:"average"`
	Count   int     `bson:"count" json:"count"`
}

// JobTotals counts finished bookings.
type JobTotals struct {
	Completed int `bson:"completed" json:"completed"`
	Cancelled int `bson:"cancelled" json:"cancelled"`
}

// ServiceProvider is a provider profile owned by a user.
type ServiceProvider struct {
	ID              string             `bson:"id" json:"id"`
	UserID          string             `bson:"user" json:"user"`
	ServiceType     string             `bson:"serviceType" json:"serviceType"` // electrician, plumber, carpenter, cleaner, painter, other
	Description     string             `bson:"description" json:"description"`
	Skills          []string           `bson:"skills" json:"skills"`
	Experience      int                `bson:"experience" json:"experience"` // years
	HourlyRate      float64            `bson:"hourlyRate" json:"hourlyRate"`
	DailyRate       float64            `bson:"dailyRate" json:"dailyRate"`
	MinBookingHours float64            `bson:"minBookingHours" json:"minBookingHours"`
	Availability    WeeklyAvailability `bson:"availability" json:"availability"`
	Location        ProviderLocation   `bson:"location" json:"location"`
	Images          []Image            `bson:"images,omitempty" json:"images,omitempty"`
	Documents       []ProviderDocument `bson:"documents,omitempty" json:"documents,omitempty"`
	Rating          RatingSummary      `bson:"rating" json:"rating"`
	TotalJobs       JobTotals          `bson:"totalJobs" json:"totalJobs"`
	ResponseTime    int                `bson:"responseTime" json:"responseTime"` // minutes
	IsVerified      bool               `bson:"isVerified" json:"isVerified"`
	IsAvailable     bool               `bson:"isAvailable" json:"isAvailable"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ServiceTypes are the categories a provider may register under.
var ServiceTypes = []string{"electrician", "plumber", "carpenter", "cleaner", "painter", "other"}

// IsKnownServiceType reports whether t is one of ServiceTypes.
func IsKnownServiceType(t string) bool {
	for _, s := range ServiceTypes {
		if s == t {
			return true
		}
	}
	return false
}

// CreateProviderRequest is the body of POST /service-providers.
type CreateProviderRequest struct {
	ServiceType     string             `json:"serviceType"`
	Description     string             `json:"description"`
	Skills          []string           `json:"skills"`
	Experience      int                `json:"experience"`
	HourlyRate      float64            `json:"hourlyRate"`
	DailyRate       float64            `json:"dailyRate"`
	MinBookingHours float64            `json:"minBookingHours"`
	Availability    WeeklyAvailability `json:"availability"`
	Location        ProviderLocation   `json:"location"`
	Images          []Image            `json:"images"`
	Documents       []ProviderDocument `json:"documents"`
}

// UpdateProviderRequest is the body of PATCH /service-providers/me. Nil fields are left unchanged.
type UpdateProviderRequest struct {
	Description     *string             `json:"description"`
	Skills          *[]string           `json:"skills"`
	Experience      *int                `json:"experience"`
	HourlyRate      *float64            `json:"hourlyRate"`
	DailyRate       *float64            `json:"dailyRate"`
	MinBookingHours *float64            `json:"minBookingHours"`
	Availability    *WeeklyAvailability `json:"availability"`
	Location        *ProviderLocation   `json:"location"`
	IsAvailable     *bool               `json:"isAvailable"`
}

// DirectoryQuery filters and orders the public provider listing.
type DirectoryQuery struct {
	ServiceType string
	City        string
	MinRating   float64
	SortBy      string // rating, price, experience, recency
	Page        int
	Limit       int
}

// Directory sort keys.
const (
	SortByRating     = "rating"
	SortByPrice      = "price"
	SortByExperience = "experience"
	SortByRecency    = "recency"
)
