package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"go-lifeline/types"
)

// SaveClusters stores a clustering run. Clustering is deterministic over an
// unchanged pool and the cluster id is the primary report's id, so re-runs
// overwrite the same documents instead of accumulating duplicates.
func SaveClusters(ctx context.Context, client *firestore.Client, clusters []types.Cluster) error {
	batch := client.Batch()
	for _, cluster := range clusters {
		ref := client.Collection(clustersCollection).Doc(cluster.ClusterID)
		batch.Set(ref, cluster)
	}

	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to save %d clusters: %w", len(clusters), err)
	}
	return nil
}

// DeleteCluster removes a stored cluster, used after merges supersede it.
func DeleteCluster(ctx context.Context, client *firestore.Client, clusterID string) error {
	if _, err := client.Collection(clustersCollection).Doc(clusterID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete cluster %s: %w", clusterID, err)
	}
	return nil
}

// GetClusters returns every stored cluster.
func GetClusters(ctx context.Context, client *firestore.Client) ([]types.Cluster, error) {
	docs, err := client.Collection(clustersCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query clusters: %w", err)
	}

	clusters := make([]types.Cluster, 0, len(docs))
	for _, doc := range docs {
		var cluster types.Cluster
		if err := doc.DataTo(&cluster); err != nil {
			return nil, fmt.Errorf("failed to decode cluster %s: %w", doc.Ref.ID, err)
		}
		cluster.ClusterID = doc.Ref.ID
		clusters = append(clusters, cluster)
	}
	return clusters, nil
}
