package models

import "time"

// PaymentStatus tracks settlement of a booking. Settlement itself happens outside this service.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPartial  PaymentStatus = "partial"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// MessageSender identifies which party wrote a booking message.
type MessageSender string

const (
	SenderCustomer MessageSender = "customer"
	SenderProvider MessageSender = "provider"
)

// Coordinates is an optional geo point attached to an address.
type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Address is where the service is performed.
type Address struct {
	Street      string       `bson:"street" json:"street"`
	City        string       `bson:"city" json:"city"`
	State       string       `bson:"state" json:"state"`
	PostalCode  string       `bson:"postalCode" json:"postalCode"`
	Coordinates *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

// TimeSlot is a requested window on the booking date, in "HH:MM".
type TimeSlot struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// Schedule is the originally requested date and window.
type Schedule struct {
	Date           string   `bson:"date" json:"date"` // "YYYY-MM-DD"
	TimeSlot       TimeSlot `bson:"timeSlot" json:"timeSlot"`
	EstimatedHours float64  `bson:"estimatedHours" json:"estimatedHours"`
}

// Pricing is a snapshot taken when the booking is created.
type Pricing struct {
	HourlyRate     float64       `bson:"hourlyRate" json:"hourlyRate"`         // copied from the provider at creation time
	EstimatedTotal float64       `bson:"estimatedTotal" json:"estimatedTotal"` // hourlyRate x estimatedHours
	FinalAmount    float64       `bson:"finalAmount" json:"finalAmount"`
	PaymentStatus  PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`
}

// StatusHistoryEntry is one append-only audit record of a status change.
type StatusHistoryEntry struct {
	Status    BookingStatus `bson:"status" json:"status"`
	Timestamp time.Time     `bson:"timestamp" json:"timestamp"`
	Note      string        `bson:"note" json:"note"`
}

// BookingMessage is one entry in the customer/provider thread on a booking.
type BookingMessage struct {
	Sender    MessageSender `bson:"sender" json:"sender"`
	SenderID  string        `bson:"senderId" json:"senderId"`
	Text      string        `bson:"text" json:"text"`
	Timestamp time.Time     `bson:"timestamp" json:"timestamp"`
}

// Attachment is an externally hosted file referenced by URL only.
type Attachment struct {
	URL  string `bson:"url" json:"url"`
	Name string `bson:"name,omitempty" json:"name,omitempty"`
}

// ReviewSummary is the denormalized copy of a Review kept on its booking.
type ReviewSummary struct {
	Rating    int       `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment" json:"comment"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Booking is a single service request between one customer and one provider.
type Booking struct {
	ID                  string               `bson:"id" json:"id"`
	CustomerID          string               `bson:"customer" json:"customer"`
	ProviderID          string               `bson:"provider" json:"provider"`         // ServiceProvider document id
	ProviderUserID      string               `bson:"providerUser" json:"providerUser"` // user owning the provider profile
	ServiceType         string               `bson:"serviceType" json:"serviceType"`
	Description         string               `bson:"description,omitempty" json:"description,omitempty"`
	SpecialInstructions string               `bson:"specialInstructions,omitempty" json:"specialInstructions,omitempty"`
	Attachments         []Attachment         `bson:"attachments,omitempty" json:"attachments,omitempty"`
	Address             Address              `bson:"address" json:"address"`
	Schedule            Schedule             `bson:"schedule" json:"schedule"`
	Pricing             Pricing              `bson:"pricing" json:"pricing"`
	Status              BookingStatus        `bson:"status" json:"status"`
	StatusHistory       []StatusHistoryEntry `bson:"statusHistory" json:"statusHistory"`
	Messages            []BookingMessage     `bson:"messages" json:"messages"`
	RescheduledDate     string               `bson:"rescheduledDate,omitempty" json:"rescheduledDate,omitempty"`
	RescheduledTimeSlot *TimeSlot            `bson:"rescheduledTimeSlot,omitempty" json:"rescheduledTimeSlot,omitempty"`
	CancellationReason  string               `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	RejectionReason     string               `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	CompletedAt         *time.Time           `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	ReviewID            string               `bson:"reviewId,omitempty" json:"reviewId,omitempty"`
	Review              *ReviewSummary       `bson:"review,omitempty" json:"review,omitempty"`
	CreatedAt           time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// IsParticipant reports whether userID is the customer or the provider user on the booking.
func (b *Booking) IsParticipant(userID string) bool {
	return userID != "" && (b.CustomerID == userID || b.ProviderUserID == userID)
}

// SenderFor returns the thread role for userID, or false for non-participants.
func (b *Booking) SenderFor(userID string) (MessageSender, bool) {
	switch {
	case userID == "":
		return "", false
	case b.CustomerID == userID:
		return SenderCustomer, true
	case b.ProviderUserID == userID:
		return SenderProvider, true
	}
	return "", false
}

// CreateBookingRequest is the body of POST /bookings.
type CreateBookingRequest struct {
	ServiceProviderID   string       `json:"serviceProviderId"`
	ServiceType         string       `json:"serviceType"`
	Description         string       `json:"description"`
	Address             Address      `json:"address"`
	Schedule            Schedule     `json:"schedule"`
	SpecialInstructions string       `json:"specialInstructions"`
	Attachments         []Attachment `json:"attachments"`
}

// StatusUpdateRequest is the body of PUT /bookings/:id/status.
type StatusUpdateRequest struct {
	Status             BookingStatus `json:"status"`
	CancellationReason string        `json:"cancellationReason"`
}

// RejectRequest is the body of PUT /bookings/:id/reject.
type RejectRequest struct {
	Reason string `json:"reason"`
}

// RescheduleRequest is the body of PUT /bookings/:id/reschedule.
type RescheduleRequest struct {
	ScheduledDate string   `json:"scheduledDate"`
	TimeSlot      TimeSlot `json:"timeSlot"`
}

// MessageRequest is the body of POST /bookings/:id/messages.
type MessageRequest struct {
	Message string `json:"message"`
}

// BookingFilter narrows booking list queries.
type BookingFilter struct {
	CustomerID     string
	ProviderUserID string
	Statuses       []BookingStatus
}
