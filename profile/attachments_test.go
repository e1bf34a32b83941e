package profile

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spill/models"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func pngAttachment(t *testing.T, name string) models.Attachment {
	return models.Attachment{Name: name, ContentType: "image/png", Data: pngBytes(t, 600, 300)}
}

func TestAttachmentSetAddCreatesPreview(t *testing.T) {
	previews := NewPreviewStore(0)
	set := NewAttachmentSet(0, previews)

	added, err := set.Add(pngAttachment(t, "a.png"))
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, 1, set.Len())

	id, ok := set.Preview(0)
	require.True(t, ok)
	p, ok := previews.Get(id)
	require.True(t, ok)
	assert.Equal(t, 256, p.Width)
	assert.Equal(t, 128, p.Height)
	assert.NotEmpty(t, p.JPEG)
}

func TestAttachmentSetRejects(t *testing.T) {
	set := NewAttachmentSet(1024, nil)

	_, err := set.Add(models.Attachment{Name: "notes.txt", ContentType: "text/plain", Data: []byte("hi")})
	var rerr *ResourceError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "notes.txt is not an image file", err.Error())

	_, err = set.Add(models.Attachment{Name: "big.png", ContentType: "image/png", Data: make([]byte, 2048)})
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "big.png is too large (2.00 KB). Maximum size is 1.00 KB", err.Error())

	_, err = set.Add(models.Attachment{Name: "fake.png", ContentType: "image/png", Data: []byte("not png")})
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "could not be read as an image", rerr.Reason)

	assert.Equal(t, 0, set.Len())
}

func TestCheckAttachmentDefaultLimit(t *testing.T) {
	err := CheckAttachment(models.Attachment{
		Name:        "huge.jpg",
		ContentType: "image/jpeg",
		Data:        make([]byte, models.MaxAttachmentBytes+1),
	}, models.MaxAttachmentBytes)
	require.Error(t, err)
	assert.Equal(t, "huge.jpg is too large (5.00 MB). Maximum size is 5MB", err.Error())
}

func TestAttachmentSetIgnoresDuplicates(t *testing.T) {
	set := NewAttachmentSet(0, nil)
	a := pngAttachment(t, "a.png")

	added, err := set.Add(a)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = set.Add(a)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 1, set.Len())
}

func TestAttachmentSetRemoveReleasesPreview(t *testing.T) {
	previews := NewPreviewStore(64)
	set := NewAttachmentSet(0, previews)
	_, err := set.Add(pngAttachment(t, "a.png"))
	require.NoError(t, err)
	_, err = set.Add(pngAttachment(t, "b.png"))
	require.NoError(t, err)
	assert.Equal(t, 2, previews.Len())

	require.NoError(t, set.Remove(0))
	assert.Equal(t, 1, previews.Len())
	assert.Equal(t, "b.png", set.Attachments()[0].Name)
	assert.ErrorIs(t, set.Remove(5), ErrIndexOutOfRange)

	set.Clear()
	assert.Equal(t, 0, previews.Len())
}

// pngHeader returns a PNG signature and IHDR chunk claiming w x h pixels.
// The pixel data is never read when the header alone is rejected.
func pngHeader(w, h uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")

	body := make([]byte, 0, 17)
	body = append(body, "IHDR"...)
	body = binary.BigEndian.AppendUint32(body, w)
	body = binary.BigEndian.AppendUint32(body, h)
	body = append(body, 8, 2, 0, 0, 0)

	_ = binary.Write(&buf, binary.BigEndian, uint32(len(body)-4))
	buf.Write(body)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(body))
	return buf.Bytes()
}

func TestAttachmentSetRejectsHugeDimensions(t *testing.T) {
	previews := NewPreviewStore(0)
	set := NewAttachmentSet(0, previews)

	_, err := set.Add(models.Attachment{Name: "bomb.png", ContentType: "image/png", Data: pngHeader(16000, 16000)})
	var rerr *ResourceError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "bomb.png is too large to preview", err.Error())
	assert.Equal(t, 0, set.Len())
	assert.Equal(t, 0, previews.Len())
}

func TestPreviewStorePixelLimit(t *testing.T) {
	previews := NewPreviewStore(0)
	previews.maxPixels = 600*300 - 1

	_, err := previews.Create(pngBytes(t, 600, 300))
	assert.ErrorIs(t, err, ErrImageTooLarge)

	previews.maxPixels = 600 * 300
	id, err := previews.Create(pngBytes(t, 600, 300))
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}
