package search

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/shopfusion/backend/internal/config"
	"github.com/shopfusion/backend/internal/es"
	"github.com/shopfusion/backend/internal/models"
)

// Runs against a live Elasticsearch; set ES_URL to enable.
func TestSearchRoundTrip(t *testing.T) {
	esURL := os.Getenv("ES_URL")
	if esURL == "" {
		t.Skip("ES_URL not set, skipping search integration test")
	}

	client, err := es.NewClient(&config.Config{
		ESURL:      esURL,
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
	})
	require.NoError(t, err)

	svc := &Service{ES: client, Index: "products-test-" + uuid.NewString()}
	ctx := context.Background()

	name := "integration-" + uuid.NewString()
	p := &models.Product{ID: 1, SellerID: 1, Name: name, Description: "round trip fixture", Price: 9.99}
	require.NoError(t, svc.IndexProduct(ctx, p))

	// The index is not immediately searchable; give the refresh a moment.
	var total int64
	var hits []models.Product
	require.Eventually(t, func() bool {
		total, hits, err = svc.Search(ctx, name, 0, 10)
		return err == nil && total > 0
	}, 10*time.Second, 500*time.Millisecond)
	require.Equal(t, name, hits[0].Name)

	require.NoError(t, svc.RemoveProduct(ctx, p.ID))

	// Removing an id that was never indexed is not an error.
	require.NoError(t, svc.RemoveProduct(ctx, 424242))
}
