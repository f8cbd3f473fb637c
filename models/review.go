package models

import "time"

// CompositeRating holds the overall score plus optional sub-scores, all 1-5.
type CompositeRating struct {
	Overall         int `bson:"overall" json:"overall"`
	Professionalism int `bson:"professionalism" json:"professionalism"`
	Quality         int `bson:"quality" json:"quality"`
	Punctuality     int `bson:"punctuality" json:"punctuality"`
	Communication   int `bson:"communication" json:"communication"`
}

// WithDefaults fills unset sub-ratings from Overall.
func (r CompositeRating) WithDefaults() CompositeRating {
	if r.Professionalism == 0 {
		r.Professionalism = r.Overall
	}
	if r.Quality == 0 {
		r.Quality = r.Overall
	}
	if r.Punctuality == 0 {
		r.Punctuality = r.Overall
	}
	if r.Communication == 0 {
		r.Communication = r.Overall
	}
	return r
}

// Image is an externally hosted picture with a caption.
type Image struct {
	URL     string `bson:"url" json:"url"`
	Caption string `bson:"caption,omitempty" json:"caption,omitempty"`
}

// Review is the authoritative record of a customer's feedback on one completed booking.
type Review struct {
	ID                string          `bson:"id" json:"id"`
	BookingID         string          `bson:"booking" json:"booking"` // unique
	CustomerID        string          `bson:"customer" json:"customer"`
	ServiceProviderID string          `bson:"serviceProvider" json:"serviceProvider"`
	Rating            CompositeRating `bson:"rating" json:"rating"`
	Comment           string          `bson:"comment" json:"comment"`
	Images            []Image         `bson:"images,omitempty" json:"images,omitempty"`
	HelpfulVotes      int             `bson:"helpfulVotes" json:"helpfulVotes"`
	HelpfulVoters     []string        `bson:"helpfulVoters,omitempty" json:"-"`
	IsVerified        bool            `bson:"isVerified" json:"isVerified"`
	CreatedAt         time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// Summary returns the denormalized form stored on the booking.
func (r *Review) Summary() ReviewSummary {
	return ReviewSummary{
		Rating:    r.Rating.Overall,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

// SubmitReviewRequest is the body of POST /reviews.
type SubmitReviewRequest struct {
	BookingID string          `json:"bookingId"`
	Rating    CompositeRating `json:"rating"`
	Comment   string          `json:"comment"`
	Images    []Image         `json:"images"`
}
