package profile

import (
	"context"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"spill/models"
	"spill/telegram"
)

// DefaultAvatarSize is the rendered edge length in pixels when none is given.
const DefaultAvatarSize = 32

// Avatar is a render decision: either an image or a one-character glyph.
type Avatar struct {
	ImageURL string
	Glyph    string
	Size     int
}

func (a Avatar) HasImage() bool { return a.ImageURL != "" }

// ResolveAvatar picks what to show for a user. A photo from the host wins over
// the stored profile photo; with neither, the first letter of the handle is
// shown, or "?" when there is no handle.
func ResolveAvatar(hostPhotoURL, storedPhotoURL, handle string, size int) Avatar {
	if size <= 0 {
		size = DefaultAvatarSize
	}
	if u := strings.TrimSpace(hostPhotoURL); u != "" {
		return Avatar{ImageURL: u, Size: size}
	}
	if u := strings.TrimSpace(storedPhotoURL); u != "" {
		return Avatar{ImageURL: u, Size: size}
	}
	return Avatar{Glyph: Initial(handle), Size: size}
}

// Initial returns the uppercased first character of handle, or "?".
func Initial(handle string) string {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(handle)
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}

// HostPhoto reads the host-provided photo URL once per mount and keeps the
// answer, failure included, for the lifetime of the value.
type HostPhoto struct {
	provider telegram.Provider

	once sync.Once
	url  string
	err  error
}

func NewHostPhoto(provider telegram.Provider) *HostPhoto {
	return &HostPhoto{provider: provider}
}

// URL returns the host photo, "" with telegram.ErrNotInHost outside the host.
func (h *HostPhoto) URL(ctx context.Context) (string, error) {
	h.once.Do(func() {
		if h.provider == nil {
			h.err = telegram.ErrNotInHost
			return
		}
		user, err := h.provider.Identity(ctx)
		if err != nil {
			h.err = err
			return
		}
		h.url = user.PhotoURL
	})
	return h.url, h.err
}

// AvatarFor resolves the avatar for a fetched record. Host lookup failures
// only mean there is no host photo.
func AvatarFor(ctx context.Context, host *HostPhoto, record models.UserRecord, size int) Avatar {
	var hostURL string
	if host != nil {
		hostURL, _ = host.URL(ctx)
	}
	return ResolveAvatar(hostURL, models.StringValue(record.ProfilePhotoURL), record.Handle(), size)
}
