package profile

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"spill/models"
	"spill/utils"
)

// ResourceError rejects a local file before it can reach the diff, validation
// or submission pipeline.
type ResourceError struct {
	Name   string
	Reason string
}

func (e *ResourceError) Error() string {
	return e.Name + " " + e.Reason
}

// CheckAttachment accepts image files of at most maxBytes.
func CheckAttachment(a models.Attachment, maxBytes int64) error {
	return CheckFile(a.Name, a.ContentType, a.Size(), maxBytes)
}

// CheckFile applies the attachment rule to a file that has not been read yet.
func CheckFile(name, contentType string, size, maxBytes int64) error {
	if !utils.IsImageContentType(contentType) {
		return &ResourceError{Name: name, Reason: "is not an image file"}
	}
	if size > maxBytes {
		return &ResourceError{
			Name: name,
			Reason: fmt.Sprintf("is too large (%s). Maximum size is %s",
				utils.FileSizeString(size), utils.MegabytesString(maxBytes)),
		}
	}
	return nil
}

type attachmentEntry struct {
	id         string
	attachment models.Attachment
	preview    string
}

// AttachmentSet is the ordered list of photos picked in a session, each with
// its thumbnail preview. It is not safe for concurrent use; EditSession
// guards it.
type AttachmentSet struct {
	maxBytes int64
	previews *PreviewStore
	entries  []attachmentEntry
}

func NewAttachmentSet(maxBytes int64, previews *PreviewStore) *AttachmentSet {
	if maxBytes <= 0 {
		maxBytes = models.MaxAttachmentBytes
	}
	if previews == nil {
		previews = NewPreviewStore(DefaultPreviewSide)
	}
	return &AttachmentSet{maxBytes: maxBytes, previews: previews}
}

// Add checks a picked file and keeps it with a fresh preview. A file with the
// same name and size as one already present is ignored (added is false, err nil).
func (s *AttachmentSet) Add(a models.Attachment) (bool, error) {
	if err := CheckAttachment(a, s.maxBytes); err != nil {
		return false, err
	}
	for _, e := range s.entries {
		if e.attachment.Name == a.Name && e.attachment.Size() == a.Size() {
			return false, nil
		}
	}

	preview, err := s.previews.Create(a.Data)
	if errors.Is(err, ErrImageTooLarge) {
		return false, &ResourceError{Name: a.Name, Reason: "is too large to preview"}
	}
	if err != nil {
		return false, &ResourceError{Name: a.Name, Reason: "could not be read as an image"}
	}
	s.entries = append(s.entries, attachmentEntry{id: uuid.NewString(), attachment: a, preview: preview})
	return true, nil
}

// Remove drops the attachment at index i and releases its preview.
func (s *AttachmentSet) Remove(i int) error {
	if i < 0 || i >= len(s.entries) {
		return ErrIndexOutOfRange
	}
	s.previews.Release(s.entries[i].preview)
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	return nil
}

// removeIDs drops every attachment whose id is listed.
func (s *AttachmentSet) removeIDs(ids []string) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := s.entries[:0]
	for _, e := range s.entries {
		if drop[e.id] {
			s.previews.Release(e.preview)
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
}

// Clear releases every preview and empties the set.
func (s *AttachmentSet) Clear() {
	for _, e := range s.entries {
		s.previews.Release(e.preview)
	}
	s.entries = nil
}

func (s *AttachmentSet) Len() int { return len(s.entries) }

// Attachments returns the picked files in order.
func (s *AttachmentSet) Attachments() []models.Attachment {
	out := make([]models.Attachment, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.attachment
	}
	return out
}

// Preview returns the preview handle of the attachment at index i.
func (s *AttachmentSet) Preview(i int) (string, bool) {
	if i < 0 || i >= len(s.entries) {
		return "", false
	}
	return s.entries[i].preview, true
}

func (s *AttachmentSet) ids() []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.id
	}
	return out
}
