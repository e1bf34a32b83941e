package telegram

import (
	"context"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const botToken = "123456:TEST-TOKEN"

func signedInitData(t *testing.T, authDate time.Time) string {
	t.Helper()
	values := url.Values{}
	values.Set("query_id", "AAH")
	values.Set("user", `{"id":42,"first_name":"Ada","username":"ada","photo_url":"https://t.me/i/ada.jpg"}`)
	values.Set("auth_date", strconv.FormatInt(authDate.Unix(), 10))
	return SignInitData(values, botToken)
}

func TestParseInitData(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	data, err := ParseInitData(signedInitData(t, now))
	require.NoError(t, err)

	assert.Equal(t, "AAH", data.QueryID)
	require.NotNil(t, data.User)
	assert.Equal(t, int64(42), data.User.ID)
	assert.Equal(t, "ada", data.User.Username)
	assert.Equal(t, "https://t.me/i/ada.jpg", data.User.PhotoURL)
	assert.True(t, data.AuthDate.Equal(now))
	assert.Len(t, data.Hash, 64)
}

func TestParseInitDataErrors(t *testing.T) {
	_, err := ParseInitData("  ")
	assert.ErrorIs(t, err, ErrNotInHost)

	_, err = ParseInitData("user=%7Bnot-json")
	assert.Error(t, err)

	_, err = ParseInitData("auth_date=yesterday")
	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	raw := signedInitData(t, now)

	data, err := ParseInitData(raw)
	require.NoError(t, err)
	assert.NoError(t, data.Verify(botToken, time.Hour, now.Add(time.Minute)))
	assert.ErrorIs(t, data.Verify("other-token", 0, now), ErrInvalidSignature)
	assert.ErrorIs(t, data.Verify(botToken, time.Hour, now.Add(2*time.Hour)), ErrExpired)
	assert.NoError(t, data.Verify(botToken, 0, now.Add(48*time.Hour)))
}

func TestVerifyDetectsTampering(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	values, err := url.ParseQuery(signedInitData(t, now))
	require.NoError(t, err)
	values.Set("user", `{"id":7,"first_name":"Mallory"}`)

	data, err := ParseInitData(values.Encode())
	require.NoError(t, err)
	assert.ErrorIs(t, data.Verify(botToken, 0, now), ErrInvalidSignature)

	values.Del("hash")
	data, err = ParseInitData(values.Encode())
	require.NoError(t, err)
	assert.ErrorIs(t, data.Verify(botToken, 0, now), ErrMissingHash)
}

func TestStaticProvider(t *testing.T) {
	p := NewStaticProvider(signedInitData(t, time.Now()))
	user, err := p.Identity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)

	_, err = NewStaticProvider("").Identity(context.Background())
	assert.ErrorIs(t, err, ErrNotInHost)

	_, err = NewStaticProvider("query_id=1").Identity(context.Background())
	assert.ErrorIs(t, err, ErrNotInHost)
}
