package types

import "time"

// SimilarityResult is the scored outcome of comparing one report against
// another, with human-readable justifications for every signal that
// contributed.
type SimilarityResult struct {
	ReportID string   `json:"reportId" firestore:"reportId"`
	Score    float64  `json:"score" firestore:"score"`
	Reasons  []string `json:"reasons" firestore:"reasons"`
}

// DuplicateVerdict is advisory: the engine never merges or deletes
// anything, it only reports what it found and how confident it is.
type DuplicateVerdict struct {
	IsDuplicate   bool     `json:"isDuplicate" firestore:"isDuplicate"`
	DuplicateOfID string   `json:"duplicateOfId,omitempty" firestore:"duplicateOfId,omitempty"`
	Confidence    float64  `json:"confidence" firestore:"confidence"`
	Reasons       []string `json:"reasons" firestore:"reasons"`
}

// Cluster groups reports judged to describe the same real-world incident.
// ClusterID and PrimaryReportID are fixed to the earliest-created member so
// re-running clustering on an unchanged pool reproduces identical output.
type Cluster struct {
	ClusterID       string    `json:"clusterId" firestore:"-"`
	MemberIDs       []string  `json:"memberIds" firestore:"memberIds"`
	PrimaryReportID string    `json:"primaryReportId" firestore:"primaryReportId"`
	Confidence      float64   `json:"confidence" firestore:"confidence"`
	Reasons         []string  `json:"reasons" firestore:"reasons"`
	EarliestReport  time.Time `json:"earliestReport" firestore:"earliestReport"`
	Summary         string    `json:"summary,omitempty" firestore:"summary,omitempty"`
}

// Match is a proposed request/offer pairing. Scores live on a 0-100 scale;
// committing a match is a human-authorized action outside the engine.
type Match struct {
	RequestID  string   `json:"requestId" firestore:"requestId"`
	OfferID    string   `json:"offerId" firestore:"offerId"`
	Score      float64  `json:"score" firestore:"score"`
	DistanceKm *float64 `json:"distanceKm,omitempty" firestore:"distanceKm,omitempty"`
	Reasoning  string   `json:"reasoning" firestore:"reasoning"`
}
