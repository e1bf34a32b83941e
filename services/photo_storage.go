package services

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"spill/models"
)

var ErrPhotoNotFound = errors.New("photo not found")

// PhotoStorage stores uploaded profile photos and returns their public URL.
type PhotoStorage interface {
	Put(ctx context.Context, userID int64, photo models.Attachment) (string, error)
}

// photoKey builds "profile-photos/<user>/<timestamp>-<uuid><ext>".
func photoKey(userID int64, photo models.Attachment, now time.Time) string {
	ext := strings.ToLower(path.Ext(photo.Name))
	if ext == "" {
		switch photo.ContentType {
		case "image/jpeg", "image/jpg":
			ext = ".jpg"
		default:
			if exts, _ := mime.ExtensionsByType(photo.ContentType); len(exts) > 0 {
				ext = exts[0]
			}
		}
	}
	return fmt.Sprintf("profile-photos/%d/%s-%s%s", userID, now.UTC().Format("20060102150405"), uuid.NewString(), ext)
}

type storedPhoto struct {
	contentType string
	data        []byte
}

// MemoryPhotoStorage keeps photos in process memory and serves them under
// BaseURL + "/media/".
type MemoryPhotoStorage struct {
	BaseURL string

	mu     sync.RWMutex
	photos map[string]storedPhoto
}

func NewMemoryPhotoStorage(baseURL string) *MemoryPhotoStorage {
	return &MemoryPhotoStorage{
		BaseURL: strings.TrimRight(baseURL, "/"),
		photos:  make(map[string]storedPhoto),
	}
}

func (s *MemoryPhotoStorage) Put(ctx context.Context, userID int64, photo models.Attachment) (string, error) {
	key := photoKey(userID, photo, time.Now())
	s.mu.Lock()
	s.photos[key] = storedPhoto{contentType: photo.ContentType, data: append([]byte(nil), photo.Data...)}
	s.mu.Unlock()
	return s.BaseURL + "/media/" + key, nil
}

// Get returns a stored photo's content type and bytes.
func (s *MemoryPhotoStorage) Get(key string) (string, []byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.photos[key]
	if !ok {
		return "", nil, ErrPhotoNotFound
	}
	return p.contentType, p.data, nil
}
