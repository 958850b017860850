package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewR2Client_RequiresEndpointAndBucket(t *testing.T) {
	_, err := NewR2Client(context.Background(), R2Options{Bucket: "b"})
	assert.Error(t, err)

	_, err = NewR2Client(context.Background(), R2Options{Endpoint: "https://acct.r2.cloudflarestorage.com"})
	assert.Error(t, err)
}

func TestPublicURL(t *testing.T) {
	client, err := NewR2Client(context.Background(), R2Options{
		Endpoint:      "https://acct.r2.cloudflarestorage.com",
		AccessKey:     "key",
		SecretKey:     "secret",
		Bucket:        "rentwear",
		PublicBaseURL: "https://cdn.rentwear.shop/",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.rentwear.shop/products/p1/a.jpg", client.PublicURL("products/p1/a.jpg"))
	assert.Equal(t, "https://cdn.rentwear.shop/x.png", client.PublicURL("/x.png"))
}
