package database

import (
	"context"
	"fmt"
	"time"

	"github.com/pinecone-io/go-pinecone/v4/pinecone"
)

// NewPineconeIndex resolves the host of an existing index and opens a data-plane
// connection to it. A missing or unreachable index is an error.
func NewPineconeIndex(apiKey, indexName, namespace string) (*pinecone.IndexConnection, error) {
	pc, err := pinecone.NewClient(pinecone.NewClientParams{ApiKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create Pinecone client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	idx, err := pc.DescribeIndex(ctx, indexName)
	if err != nil {
		return nil, fmt.Errorf("failed to describe Pinecone index %q: %w", indexName, err)
	}
	if idx.Host == "" {
		return nil, fmt.Errorf("Pinecone index %q has no host", indexName)
	}

	conn, err := pc.Index(pinecone.NewIndexConnParams{Host: idx.Host, Namespace: namespace})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Pinecone index %q: %w", indexName, err)
	}

	return conn, nil
}
