package profile

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DefaultPreviewSide bounds the longest edge of a thumbnail preview.
const DefaultPreviewSide = 256

// MaxPreviewPixels bounds the decoded size of a source image. Compressed
// files far below the byte limit can still expand past it.
const MaxPreviewPixels = 40_000_000

// ErrImageTooLarge is returned for images whose pixel count exceeds the bound.
var ErrImageTooLarge = errors.New("image dimensions too large")

// Preview is an in-memory JPEG thumbnail of an attachment that has not been
// uploaded yet.
type Preview struct {
	ID     string
	Width  int
	Height int
	JPEG   []byte
}

// PreviewStore owns thumbnail previews for one editing session. Every preview
// it creates must be released when its attachment goes away.
type PreviewStore struct {
	mu        sync.Mutex
	maxSide   int
	maxPixels int64
	items     map[string]*Preview
}

func NewPreviewStore(maxSide int) *PreviewStore {
	if maxSide <= 0 {
		maxSide = DefaultPreviewSide
	}
	return &PreviewStore{maxSide: maxSide, maxPixels: MaxPreviewPixels, items: make(map[string]*Preview)}
}

// Create decodes data as an image, scales it down to fit the store's bound and
// keeps the result under a new handle. The header is checked first so an
// oversized image is refused before any pixel is decoded.
func (s *PreviewStore) Create(data []byte) (string, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > s.maxPixels {
		return "", fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	w, h := fit(src.Bounds().Dx(), src.Bounds().Dy(), s.maxSide)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 80}); err != nil {
		return "", fmt.Errorf("failed to encode preview: %w", err)
	}

	p := &Preview{ID: "preview:" + uuid.NewString(), Width: w, Height: h, JPEG: buf.Bytes()}
	s.mu.Lock()
	s.items[p.ID] = p
	s.mu.Unlock()
	return p.ID, nil
}

func (s *PreviewStore) Get(id string) (*Preview, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	return p, ok
}

// Release drops a preview. It reports whether the handle was live.
func (s *PreviewStore) Release(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	return true
}

// Len is the number of previews not yet released.
func (s *PreviewStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// fit scales w x h down so the longest side is at most limit, keeping the ratio.
func fit(w, h, limit int) (int, int) {
	if w <= limit && h <= limit {
		return max1(w), max1(h)
	}
	if w >= h {
		return limit, max1(h * limit / w)
	}
	return max1(w * limit / h), limit
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
