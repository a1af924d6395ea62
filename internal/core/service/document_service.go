package service

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/propamit/propamit-api/internal/core/domain"
	"github.com/propamit/propamit-api/internal/core/ports"
)

const defaultCategory = "general"

// DocumentService streams uploaded files to object storage and records their
// metadata. The object key embeds the owner's user id so files are grouped
// per account.
type DocumentService struct {
	store     ports.FileStore
	documents ports.DocumentRepository
	logger    zerolog.Logger
}

func NewDocumentService(store ports.FileStore, documents ports.DocumentRepository, logger zerolog.Logger) *DocumentService {
	return &DocumentService{store: store, documents: documents, logger: logger}
}

func (s *DocumentService) Upload(ctx context.Context, in ports.UploadInput) (*domain.Document, error) {
	category := in.Category
	if category == "" {
		category = defaultCategory
	}

	key := fmt.Sprintf("documents/%s/%s%s", in.UserID, uuid.NewString(), path.Ext(in.OriginalName))

	url, err := s.store.Put(ctx, key, in.ContentType, in.Size, in.Body)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	doc := &domain.Document{
		UserID:       in.UserID,
		FileName:     key,
		OriginalName: in.OriginalName,
		FileURL:      url,
		FileType:     in.ContentType,
		FileSize:     in.Size,
		Category:     category,
		UploadedAt:   time.Now().UTC(),
	}

	created, err := s.documents.Insert(ctx, doc)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", in.UserID).
		Str("key", key).
		Int64("size", in.Size).
		Msg("document uploaded")
	return created, nil
}
