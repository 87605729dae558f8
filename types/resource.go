package types

import "time"

type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

type RequestStatus string

const (
	RequestOpen      RequestStatus = "open"
	RequestMatched   RequestStatus = "matched"
	RequestFulfilled RequestStatus = "fulfilled"
	RequestCancelled RequestStatus = "cancelled"
)

type OfferStatus string

const (
	OfferAvailable OfferStatus = "available"
	OfferCommitted OfferStatus = "committed"
	OfferDelivered OfferStatus = "delivered"
)

// ResourceRequest is a volunteer/NGO demand for a resource (water, food,
// shelter, ...). Read-only input to the matching scorer.
type ResourceRequest struct {
	ID           string        `json:"id" firestore:"-"`
	ResourceType string        `json:"resourceType" firestore:"resourceType" binding:"required"`
	Quantity     int           `json:"quantity" firestore:"quantity" binding:"required"`
	Urgency      Urgency       `json:"urgency" firestore:"urgency"`
	Lat          *float64      `json:"lat,omitempty" firestore:"lat,omitempty"`
	Long         *float64      `json:"long,omitempty" firestore:"long,omitempty"`
	Status       RequestStatus `json:"status" firestore:"status"`
	CreatedAt    time.Time     `json:"createdAt" firestore:"createdAt"`
}

func (r ResourceRequest) HasCoordinates() bool {
	return r.Lat != nil && r.Long != nil
}

// AidOffer is supply offered by a donor. Read-only input to the matching
// scorer.
type AidOffer struct {
	ID           string      `json:"id" firestore:"-"`
	ResourceType string      `json:"resourceType" firestore:"resourceType" binding:"required"`
	Quantity     int         `json:"quantity" firestore:"quantity" binding:"required"`
	Lat          *float64    `json:"lat,omitempty" firestore:"lat,omitempty"`
	Long         *float64    `json:"long,omitempty" firestore:"long,omitempty"`
	Status       OfferStatus `json:"status" firestore:"status"`
	CreatedAt    time.Time   `json:"createdAt" firestore:"createdAt"`
}

func (o AidOffer) HasCoordinates() bool {
	return o.Lat != nil && o.Long != nil
}
