package models

import "time"

// PriceType says how a catalog price is charged.
type PriceType string

const (
	PriceHourly     PriceType = "hourly"
	PriceFixed      PriceType = "fixed"
	PricePerService PriceType = "per_service"
)

func (p PriceType) Valid() bool {
	switch p {
	case PriceHourly, PriceFixed, PricePerService:
		return true
	}
	return false
}

// ServiceLocation is where a catalog service is offered.
type ServiceLocation struct {
	Address string `bson:"address" json:"address"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	Pincode string `bson:"pincode" json:"pincode"`
}

// Service is one priced offering in a provider's catalog. ProviderID is the owning user.
type Service struct {
	ID           string             `bson:"id" json:"id"`
	ProviderID   string             `bson:"provider" json:"provider"`
	ServiceType  string             `bson:"serviceType" json:"serviceType"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	Price        float64            `bson:"price" json:"price"`
	PriceType    PriceType          `bson:"priceType" json:"priceType"`
	Availability WeeklyAvailability `bson:"availability" json:"availability"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	Location     ServiceLocation    `bson:"location" json:"location"`
	Experience   int                `bson:"experience" json:"experience"`
	Rating       float64            `bson:"rating" json:"rating"`
	TotalReviews int                `bson:"totalReviews" json:"totalReviews"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ServiceOwner is the contact card shown with a catalog service.
type ServiceOwner struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// ServiceDetail is a catalog service with its owner's contact card.
type ServiceDetail struct {
	Service
	Owner *ServiceOwner `json:"providerContact,omitempty"`
}

// CreateServiceRequest is the body of POST /services.
type CreateServiceRequest struct {
	ServiceType  string             `json:"serviceType"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Price        float64            `json:"price"`
	PriceType    PriceType          `json:"priceType"`
	Availability WeeklyAvailability `json:"availability"`
	Location     ServiceLocation    `json:"location"`
	Experience   int                `json:"experience"`
}

// UpdateServiceRequest is the body of PUT /services/:id. Nil fields are left unchanged.
type UpdateServiceRequest struct {
	ServiceType  *string             `json:"serviceType"`
	Title        *string             `json:"title"`
	Description  *string             `json:"description"`
	Price        *float64            `json:"price"`
	PriceType    *PriceType          `json:"priceType"`
	Availability *WeeklyAvailability `json:"availability"`
	Location     *ServiceLocation    `json:"location"`
	Experience   *int                `json:"experience"`
	IsActive     *bool               `json:"isActive"`
}
