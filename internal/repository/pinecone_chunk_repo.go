package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pinecone-io/go-pinecone/v4/pinecone"
	"google.golang.org/protobuf/types/known/structpb"

	"medibot-backend/internal/models"
)

// Metadata keys written at ingestion. "text" carries the chunk passage.
const (
	metaText       = "text"
	metaSource     = "source"
	metaChunkIndex = "chunk_index"
)

const pineconeUpsertBatch = 100

type pineconeIndex interface {
	QueryByVectorValues(ctx context.Context, in *pinecone.QueryByVectorValuesRequest) (*pinecone.QueryVectorsResponse, error)
	UpsertVectors(ctx context.Context, in []*pinecone.Vector) (uint32, error)
}

type PineconeChunkRepo struct {
	index    pineconeIndex
	embedder Embedder
}

func NewPineconeChunkRepo(index pineconeIndex, embedder Embedder) *PineconeChunkRepo {
	return &PineconeChunkRepo{index: index, embedder: embedder}
}

func (r *PineconeChunkRepo) SimilaritySearch(ctx context.Context, query string, k int) ([]models.Chunk, error) {
	vec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	resp, err := r.index.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          vec,
		TopK:            uint32(k),
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query Pinecone: %w", err)
	}

	chunks := make([]models.Chunk, 0, len(resp.Matches))
	for _, match := range resp.Matches {
		if c, ok := chunkFromMatch(match); ok {
			chunks = append(chunks, c)
		}
	}
	return chunks, nil
}

func (r *PineconeChunkRepo) Upsert(ctx context.Context, chunks []models.Chunk, vectors [][]float32) error {
	if err := checkUpsertLengths(len(chunks), len(vectors)); err != nil {
		return err
	}

	for begin := 0; begin < len(chunks); begin += pineconeUpsertBatch {
		end := min(begin+pineconeUpsertBatch, len(chunks))

		batch := make([]*pinecone.Vector, 0, end-begin)
		for i := begin; i < end; i++ {
			md, err := chunkMetadata(chunks[i])
			if err != nil {
				return err
			}
			values := vectors[i]
			batch = append(batch, &pinecone.Vector{
				Id:       chunks[i].ID,
				Values:   &values,
				Metadata: md,
			})
		}

		if _, err := r.index.UpsertVectors(ctx, batch); err != nil {
			return fmt.Errorf("failed to upsert %d vectors to Pinecone: %w", len(batch), err)
		}
	}
	return nil
}

func chunkMetadata(c models.Chunk) (*structpb.Struct, error) {
	fields := make(map[string]any, len(c.Metadata)+3)
	for k, v := range c.Metadata {
		fields[k] = v
	}
	fields[metaText] = c.Text
	fields[metaSource] = c.Source
	fields[metaChunkIndex] = float64(c.Index)

	md, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to build metadata for chunk %s: %w", c.ID, err)
	}
	return md, nil
}

// chunkFromMatch converts a scored match. Matches without passage text are dropped.
func chunkFromMatch(match *pinecone.ScoredVector) (models.Chunk, bool) {
	if match == nil || match.Vector == nil || match.Vector.Metadata == nil {
		return models.Chunk{}, false
	}

	c := models.Chunk{
		ID:       match.Vector.Id,
		Score:    match.Score,
		Metadata: map[string]string{},
	}
	for key, val := range match.Vector.Metadata.GetFields() {
		switch key {
		case metaText:
			c.Text = val.GetStringValue()
		case metaSource:
			c.Source = val.GetStringValue()
		case metaChunkIndex:
			c.Index = int(val.GetNumberValue())
		default:
			if s, ok := metadataString(val); ok {
				c.Metadata[key] = s
			}
		}
	}

	if c.Text == "" {
		return models.Chunk{}, false
	}
	return c, true
}

func metadataString(v *structpb.Value) (string, bool) {
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return k.StringValue, true
	case *structpb.Value_NumberValue:
		return strconv.FormatFloat(k.NumberValue, 'f', -1, 64), true
	case *structpb.Value_BoolValue:
		return strconv.FormatBool(k.BoolValue), true
	default:
		return "", false
	}
}
