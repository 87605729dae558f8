package types

import "time"

type Category string

const (
	Wildfire   Category = "wildfire"
	Flood      Category = "flood"
	Earthquake Category = "earthquake"
	Hurricane  Category = "hurricane"
	Tornado    Category = "tornado"
	Landslide  Category = "landslide"
	Medical    Category = "medical"
	Other      Category = "other"
)

type Severity string

const (
	Low      Severity = "low"
	Medium   Severity = "medium"
	High     Severity = "high"
	Critical Severity = "critical"
)

// IncidentReport is a citizen-submitted disaster report. Coordinates are
// optional; reports with only a free-text location get geocoded on intake.
type IncidentReport struct {
	ID          string   `json:"id" firestore:"-"`
	Title       string   `json:"title" firestore:"title" binding:"required"`
	Description string   `json:"description" firestore:"description"`
	Category    Category `json:"category" firestore:"category" binding:"required"`
	Severity    Severity `json:"severity" firestore:"severity"`
	Location    string   `json:"location" firestore:"location"`
	Lat         *float64 `json:"lat,omitempty" firestore:"lat,omitempty"`
	Long        *float64 `json:"long,omitempty" firestore:"long,omitempty"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`

	// IDs of reports linked as similar. Maintained bidirectionally by the
	// persistence layer; the engine only proposes edges.
	SimilarReportIDs []string `json:"similarReportIds" firestore:"similarReportIds"`
}

// HasCoordinates reports whether both latitude and longitude are set.
func (r IncidentReport) HasCoordinates() bool {
	return r.Lat != nil && r.Long != nil
}
