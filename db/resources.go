package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go-lifeline/types"
)

// SaveResourceRequest persists a request and returns its id.
func SaveResourceRequest(ctx context.Context, client *firestore.Client, request types.ResourceRequest) (string, error) {
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	if request.Status == "" {
		request.Status = types.RequestOpen
	}

	_, err := client.Collection(requestsCollection).Doc(request.ID).Set(ctx, request)
	if err != nil {
		return "", fmt.Errorf("failed to save resource request %s: %w", request.ID, err)
	}
	return request.ID, nil
}

// SaveAidOffer persists an offer and returns its id.
func SaveAidOffer(ctx context.Context, client *firestore.Client, offer types.AidOffer) (string, error) {
	if offer.ID == "" {
		offer.ID = uuid.NewString()
	}
	if offer.Status == "" {
		offer.Status = types.OfferAvailable
	}

	_, err := client.Collection(offersCollection).Doc(offer.ID).Set(ctx, offer)
	if err != nil {
		return "", fmt.Errorf("failed to save aid offer %s: %w", offer.ID, err)
	}
	return offer.ID, nil
}

// GetResourceRequest loads a single request by id.
func GetResourceRequest(ctx context.Context, client *firestore.Client, id string) (types.ResourceRequest, error) {
	doc, err := client.Collection(requestsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return types.ResourceRequest{}, fmt.Errorf("resource request %s not found", id)
		}
		return types.ResourceRequest{}, fmt.Errorf("failed to get resource request %s: %w", id, err)
	}

	var request types.ResourceRequest
	if err := doc.DataTo(&request); err != nil {
		return types.ResourceRequest{}, fmt.Errorf("failed to decode resource request %s: %w", id, err)
	}
	request.ID = doc.Ref.ID
	return request, nil
}

// GetAidOffer loads a single offer by id.
func GetAidOffer(ctx context.Context, client *firestore.Client, id string) (types.AidOffer, error) {
	doc, err := client.Collection(offersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return types.AidOffer{}, fmt.Errorf("aid offer %s not found", id)
		}
		return types.AidOffer{}, fmt.Errorf("failed to get aid offer %s: %w", id, err)
	}

	var offer types.AidOffer
	if err := doc.DataTo(&offer); err != nil {
		return types.AidOffer{}, fmt.Errorf("failed to decode aid offer %s: %w", id, err)
	}
	offer.ID = doc.Ref.ID
	return offer, nil
}

// GetOpenRequests returns the demand pool for offer-initiated matching.
func GetOpenRequests(ctx context.Context, client *firestore.Client) ([]types.ResourceRequest, error) {
	docs, err := client.Collection(requestsCollection).
		Where("status", "==", string(types.RequestOpen)).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query open requests: %w", err)
	}

	requests := make([]types.ResourceRequest, 0, len(docs))
	for _, doc := range docs {
		var request types.ResourceRequest
		if err := doc.DataTo(&request); err != nil {
			return nil, fmt.Errorf("failed to decode resource request %s: %w", doc.Ref.ID, err)
		}
		request.ID = doc.Ref.ID
		requests = append(requests, request)
	}
	return requests, nil
}

// GetAvailableOffers returns the supply pool for request-initiated matching.
func GetAvailableOffers(ctx context.Context, client *firestore.Client) ([]types.AidOffer, error) {
	docs, err := client.Collection(offersCollection).
		Where("status", "==", string(types.OfferAvailable)).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query available offers: %w", err)
	}

	offers := make([]types.AidOffer, 0, len(docs))
	for _, doc := range docs {
		var offer types.AidOffer
		if err := doc.DataTo(&offer); err != nil {
			return nil, fmt.Errorf("failed to decode aid offer %s: %w", doc.Ref.ID, err)
		}
		offer.ID = doc.Ref.ID
		offers = append(offers, offer)
	}
	return offers, nil
}
