package upload

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/mx70/mx70-api/internal/pkg/imaging"
	"github.com/mx70/mx70-api/internal/pkg/storage"
)

type fakeRepo struct {
	uploads map[uuid.UUID]*Upload
	failing bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{uploads: make(map[uuid.UUID]*Upload)}
}

func (f *fakeRepo) Create(ctx context.Context, u *Upload) error {
	if f.failing {
		return errors.New("db down")
	}
	f.uploads[u.ID] = u
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Upload, error) {
	return f.uploads[id], nil
}

func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.uploads, id)
	return nil
}

func (f *fakeRepo) ListByUser(ctx context.Context, userID uuid.UUID, kind Kind) ([]*Upload, error) {
	var out []*Upload
	for _, u := range f.uploads {
		if u.UserID == userID && (kind == "" || u.Kind == kind) {
			out = append(out, u)
		}
	}
	return out, nil
}

type memoryStore struct {
	objects map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: make(map[string][]byte)}
}

func (m *memoryStore) Put(ctx context.Context, key string, reader io.Reader, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.objects[key] = data
	return nil
}

func (m *memoryStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memoryStore) Delete(ctx context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memoryStore) GetURL(key string) string {
	return "https://cdn.test/" + key
}

func newTestService(repo *fakeRepo, store *memoryStore) *Service {
	return NewService(repo, store, imaging.NewProcessor(imaging.DefaultConfig()))
}

func pngImage(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return &buf
}

func TestStoreCoverImageCreatesThumbnail(t *testing.T) {
	repo := newFakeRepo()
	store := newMemoryStore()
	svc := newTestService(repo, store)

	businessID := uuid.New()
	u, err := svc.Store(context.Background(), businessID, "business_local", KindCoverImage, "cover.png", pngImage(t, 800, 600))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if u.ThumbnailKey == "" || u.ThumbnailURL == "" {
		t.Error("expected thumbnail key and URL for cover image")
	}
	if u.Width != 800 || u.Height != 600 {
		t.Errorf("expected dimensions 800x600, got %dx%d", u.Width, u.Height)
	}
	if _, ok := store.objects[u.StorageKey]; !ok {
		t.Error("cover object not stored")
	}
	if _, ok := store.objects[u.ThumbnailKey]; !ok {
		t.Error("thumbnail object not stored")
	}
	if repo.uploads[u.ID] == nil {
		t.Error("upload record not persisted")
	}
	if !strings.HasPrefix(u.URL, "https://cdn.test/cover_image/") {
		t.Errorf("unexpected URL: %s", u.URL)
	}
}

func TestStoreRejectsWrongRole(t *testing.T) {
	svc := newTestService(newFakeRepo(), newMemoryStore())

	_, err := svc.Store(context.Background(), uuid.New(), "clipper", KindCoverImage, "cover.png", pngImage(t, 10, 10))
	if !errors.Is(err, ErrWrongRole) {
		t.Errorf("expected ErrWrongRole, got %v", err)
	}

	_, err = svc.Store(context.Background(), uuid.New(), "business_local", KindClipVideo, "clip.mp4", strings.NewReader("data"))
	if !errors.Is(err, ErrWrongRole) {
		t.Errorf("expected ErrWrongRole for business clip upload, got %v", err)
	}
}

func TestStoreRejectsWrongFileType(t *testing.T) {
	svc := newTestService(newFakeRepo(), newMemoryStore())

	_, err := svc.Store(context.Background(), uuid.New(), "clipper", KindClipVideo, "notes.txt", strings.NewReader("just some text"))
	if !errors.Is(err, storage.ErrInvalidMimeType) {
		t.Errorf("expected ErrInvalidMimeType, got %v", err)
	}

	_, err = svc.Store(context.Background(), uuid.New(), "business_local", KindRawFootage, "empty.mp4", strings.NewReader(""))
	if !errors.Is(err, storage.ErrEmptyFile) {
		t.Errorf("expected ErrEmptyFile, got %v", err)
	}
}

func TestStoreCleansUpOnRepoFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.failing = true
	store := newMemoryStore()
	svc := newTestService(repo, store)

	_, err := svc.Store(context.Background(), uuid.New(), "business_local", KindCoverImage, "cover.png", pngImage(t, 20, 20))
	if err == nil {
		t.Fatal("expected error when record cannot be created")
	}
	if len(store.objects) != 0 {
		t.Errorf("expected stored objects to be cleaned up, %d left", len(store.objects))
	}
}

func TestDeleteOwnerOnly(t *testing.T) {
	repo := newFakeRepo()
	store := newMemoryStore()
	svc := newTestService(repo, store)

	ownerID := uuid.New()
	u, err := svc.Store(context.Background(), ownerID, "business_local", KindCoverImage, "cover.png", pngImage(t, 20, 20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Delete(context.Background(), u.ID, uuid.New()); !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}

	if err := svc.Delete(context.Background(), u.ID, ownerID); err != nil {
		t.Fatalf("unexpected error deleting own upload: %v", err)
	}
	if len(store.objects) != 0 {
		t.Errorf("expected objects removed, %d left", len(store.objects))
	}
	if len(repo.uploads) != 0 {
		t.Error("expected upload record removed")
	}
}
