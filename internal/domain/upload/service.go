package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mx70/mx70-api/internal/domain/user"
	"github.com/mx70/mx70-api/internal/pkg/imaging"
	"github.com/mx70/mx70-api/internal/pkg/storage"
)

// Service handles media upload business logic
type Service struct {
	repo      Repository
	store     storage.Storage
	processor *imaging.Processor
}

// NewService creates upload service
func NewService(repo Repository, store storage.Storage, processor *imaging.Processor) *Service {
	return &Service{
		repo:      repo,
		store:     store,
		processor: processor,
	}
}

// kindAllowedFor maps upload kinds to the role that produces them:
// businesses hand off footage and covers, clippers return edited clips.
func kindAllowedFor(kind Kind, role string) bool {
	switch kind {
	case KindRawFootage, KindCoverImage:
		return role == string(user.RoleBusiness)
	case KindClipVideo:
		return role == string(user.RoleClipper)
	}
	return false
}

// Store validates and persists an uploaded file, returning the record with
// its public URL. Cover images are downsized and get a listing thumbnail.
func (s *Service) Store(ctx context.Context, userID uuid.UUID, role string, kind Kind, filename string, reader io.Reader) (*Upload, error) {
	if !ValidKind(string(kind)) {
		return nil, ErrInvalidKind
	}
	if !kindAllowedFor(kind, role) {
		return nil, ErrWrongRole
	}

	buffer, mimeType, err := storage.ValidateAndBuffer(reader, string(kind), filename)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	ext := storage.ExtensionForMime(mimeType)
	key := fmt.Sprintf("%s/%s/%s%s", kind, userID, id, ext)

	u := &Upload{
		ID:           id,
		UserID:       userID,
		Kind:         kind,
		OriginalName: filepath.Base(filename),
		MimeType:     mimeType,
		Size:         int64(buffer.Len()),
		StorageKey:   key,
		CreatedAt:    time.Now(),
	}

	if kind == KindCoverImage {
		processed, err := s.processor.Process(bytes.NewReader(buffer.Bytes()))
		if err != nil {
			return nil, fmt.Errorf("failed to process cover image: %w", err)
		}

		thumbKey := fmt.Sprintf("%s/%s/%s_thumb%s", kind, userID, id, ext)
		if err := s.store.Put(ctx, key, bytes.NewReader(processed.Original), processed.ContentType); err != nil {
			return nil, fmt.Errorf("failed to store cover: %w", err)
		}
		if err := s.store.Put(ctx, thumbKey, bytes.NewReader(processed.Thumbnail), processed.ContentType); err != nil {
			_ = s.store.Delete(ctx, key)
			return nil, fmt.Errorf("failed to store thumbnail: %w", err)
		}

		u.MimeType = processed.ContentType
		u.Size = int64(len(processed.Original))
		u.ThumbnailKey = thumbKey
		u.ThumbnailURL = s.store.GetURL(thumbKey)
		u.Width = processed.Width
		u.Height = processed.Height
	} else {
		if err := s.store.Put(ctx, key, buffer, mimeType); err != nil {
			return nil, fmt.Errorf("failed to store file: %w", err)
		}
	}
	u.URL = s.store.GetURL(key)

	if err := s.repo.Create(ctx, u); err != nil {
		_ = s.store.Delete(ctx, key)
		if u.ThumbnailKey != "" {
			_ = s.store.Delete(ctx, u.ThumbnailKey)
		}
		return nil, fmt.Errorf("failed to create upload record: %w", err)
	}

	return u, nil
}

// GetByID returns an upload
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Upload, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUploadNotFound
	}
	return u, nil
}

// ListMine returns the user's uploads, optionally filtered by kind
func (s *Service) ListMine(ctx context.Context, userID uuid.UUID, kind Kind) ([]*Upload, error) {
	return s.repo.ListByUser(ctx, userID, kind)
}

// Delete removes an upload and its stored objects
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUploadNotFound
	}
	if u.UserID != userID {
		return ErrNotOwner
	}

	_ = s.store.Delete(ctx, u.StorageKey)
	if u.ThumbnailKey != "" {
		_ = s.store.Delete(ctx, u.ThumbnailKey)
	}
	return s.repo.Delete(ctx, id)
}
