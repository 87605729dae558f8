package handlers

import (
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"go-lifeline/db"
	"go-lifeline/logger"
	"go-lifeline/matching"
	"go-lifeline/types"
)

// SubmitResourceRequest stores a new resource request and immediately
// returns ranked match proposals against the available offer pool.
// Proposals are advisory; committing one is a separate human action.
func SubmitResourceRequest(c *gin.Context, firestoreClient *firestore.Client, scorer *matching.Scorer) {
	var request types.ResourceRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	id, err := db.SaveResourceRequest(ctx, firestoreClient, request)
	if err != nil {
		logger.Error().Err(err).Msg("failed to save resource request")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save request"})
		return
	}
	request.ID = id

	offers, err := db.GetAvailableOffers(ctx, firestoreClient)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load offer pool")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve offers"})
		return
	}

	matches := scorer.ScoreRequestAgainstOffers(ctx, request, offers)
	c.JSON(http.StatusCreated, gin.H{"request": request, "matches": matches})
}

// SubmitAidOffer stores a new offer and returns ranked match proposals
// against the pending demand pool, urgency-weighted.
func SubmitAidOffer(c *gin.Context, firestoreClient *firestore.Client, scorer *matching.Scorer) {
	var offer types.AidOffer
	if err := c.ShouldBindJSON(&offer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	id, err := db.SaveAidOffer(ctx, firestoreClient, offer)
	if err != nil {
		logger.Error().Err(err).Msg("failed to save aid offer")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save offer"})
		return
	}
	offer.ID = id

	requests, err := db.GetOpenRequests(ctx, firestoreClient)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load request pool")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve requests"})
		return
	}

	matches := scorer.ScoreOfferAgainstRequests(ctx, offer, requests)
	c.JSON(http.StatusCreated, gin.H{"offer": offer, "matches": matches})
}

// MatchRequest re-scores an existing request against the current offer
// pool.
func MatchRequest(c *gin.Context, firestoreClient *firestore.Client, scorer *matching.Scorer) {
	ctx := c.Request.Context()

	request, err := db.GetResourceRequest(ctx, firestoreClient, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	offers, err := db.GetAvailableOffers(ctx, firestoreClient)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load offer pool")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve offers"})
		return
	}

	matches := scorer.ScoreRequestAgainstOffers(ctx, request, offers)
	c.JSON(http.StatusOK, gin.H{"requestId": request.ID, "matches": matches})
}

// MatchOffer re-scores an existing offer against the current demand pool.
func MatchOffer(c *gin.Context, firestoreClient *firestore.Client, scorer *matching.Scorer) {
	ctx := c.Request.Context()

	offer, err := db.GetAidOffer(ctx, firestoreClient, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	requests, err := db.GetOpenRequests(ctx, firestoreClient)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load request pool")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve requests"})
		return
	}

	matches := scorer.ScoreOfferAgainstRequests(ctx, offer, requests)
	c.JSON(http.StatusOK, gin.H{"offerId": offer.ID, "matches": matches})
}
