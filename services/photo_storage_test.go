package services

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"spill/models"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3PhotoStoragePut(t *testing.T) {
	fake := &fakeS3{}
	storage := &S3PhotoStorage{Client: fake, Bucket: "spill-media", Region: "eu-west-1", Logger: zap.NewNop()}

	url, err := storage.Put(context.Background(), 42, models.Attachment{Name: "Me.JPG", ContentType: "image/jpeg", Data: []byte("jpeg")})
	require.NoError(t, err)

	key := *fake.input.Key
	assert.True(t, strings.HasPrefix(key, "profile-photos/42/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.Equal(t, "spill-media", *fake.input.Bucket)
	assert.Equal(t, "image/jpeg", *fake.input.ContentType)
	assert.Equal(t, []byte("jpeg"), fake.body)
	assert.Equal(t, "https://spill-media.s3.eu-west-1.amazonaws.com/"+key, url)

	storage.PublicBaseURL = "https://media.spill.app"
	url, err = storage.Put(context.Background(), 42, models.Attachment{Name: "x.png", ContentType: "image/png"})
	require.NoError(t, err)
	assert.Equal(t, "https://media.spill.app/"+*fake.input.Key, url)
}

func TestPhotoKeyExtensionFromContentType(t *testing.T) {
	now := time.Date(2026, 5, 4, 3, 2, 1, 0, time.UTC)
	key := photoKey(7, models.Attachment{Name: "blob", ContentType: "image/jpeg"}, now)
	assert.Regexp(t, `^profile-photos/7/20260504030201-[0-9a-f-]{36}\.jpg$`, key)
}

func TestMemoryPhotoStorageMissing(t *testing.T) {
	_, _, err := NewMemoryPhotoStorage("").Get("nope")
	assert.ErrorIs(t, err, ErrPhotoNotFound)
}
