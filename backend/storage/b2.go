package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/kurin/blazer/b2"
)

// B2Store хранит артефакты в бакете Backblaze B2.
type B2Store struct {
	Client *b2.Client
	Bucket *b2.Bucket
}

func NewB2Store(ctx context.Context, accountID, appKey, bucketName string) (*B2Store, error) {
	client, err := b2.NewClient(ctx, accountID, appKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create b2 client: %w", err)
	}

	bucket, err := client.Bucket(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}

	return &B2Store{Client: client, Bucket: bucket}, nil
}

func (s *B2Store) Save(ctx context.Context, key string, r io.Reader) (string, error) {
	obj := s.Bucket.Object(key)
	w := obj.NewWriter(ctx)

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	return key, nil
}

func (s *B2Store) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	return s.Bucket.Object(ref).NewReader(ctx), nil
}

func (s *B2Store) Remove(ctx context.Context, ref string) error {
	return s.Bucket.Object(ref).Delete(ctx)
}
