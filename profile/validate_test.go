package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spill/models"
)

func TestValidateAgeBounds(t *testing.T) {
	tests := []struct {
		age int
		ok  bool
	}{
		{0, false},
		{1, true},
		{26, true},
		{120, true},
		{121, false},
	}
	for _, tt := range tests {
		_, err := Validate(models.UserUpdate{Age: models.Value(tt.age)})
		if tt.ok {
			assert.NoError(t, err, "age %d", tt.age)
			continue
		}
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "age %d", tt.age)
		assert.Equal(t, "Age must be between 1 and 120", verr.Fields[models.FieldAge])
	}
}

func TestValidateNullsPass(t *testing.T) {
	_, err := Validate(models.UserUpdate{
		Age:         models.Null[int](),
		Gender:      models.Null[models.Gender](),
		PhotoURLs:   models.Null[[]string](),
		SocialLinks: models.Null[models.SocialLinks](),
	})
	assert.NoError(t, err)
}

func TestValidateGender(t *testing.T) {
	_, err := Validate(models.UserUpdate{Gender: models.Value(models.Gender("robot"))})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Gender must be one of: male, female, other", verr.Fields[models.FieldGender])
}

func TestValidatePhotoURLsReportsFirstBadIndex(t *testing.T) {
	_, err := Validate(models.UserUpdate{PhotoURLs: models.Value([]string{
		"https://cdn.example.com/a.jpg",
		"not a url",
		"/relative.jpg",
	})})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"photo_urls.1": "Invalid url"}, verr.Fields)

	msg, ok := verr.On(models.FieldPhotoURLs)
	assert.True(t, ok)
	assert.Equal(t, "Invalid url", msg)
}

func TestValidateSocialLinks(t *testing.T) {
	_, err := Validate(models.UserUpdate{SocialLinks: models.Value(models.SocialLinks{
		models.PlatformInstagram: "https://instagram.com/ada",
		"myspace":                "https://myspace.com/ada",
	})})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Unsupported platform", verr.Fields["social_links.myspace"])

	_, err = Validate(models.UserUpdate{SocialLinks: models.Value(models.SocialLinks{
		models.PlatformTwitter: "   ",
	})})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Link must not be empty", verr.Fields["social_links.twitter"])
}

func TestValidateTrimsLists(t *testing.T) {
	v, err := Validate(models.UserUpdate{
		Interests: models.Value([]string{"  chess ", "go"}),
		PhotoURLs: models.Value([]string{" https://cdn.example.com/a.jpg "}),
	})
	require.NoError(t, err)

	interests, _ := v.Interests.Get()
	assert.Equal(t, []string{"chess", "go"}, interests)
	urls, _ := v.PhotoURLs.Get()
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, urls)
}

func TestValidateCollectsEveryField(t *testing.T) {
	_, err := Validate(models.UserUpdate{
		Age:    models.Value(200),
		Gender: models.Value(models.Gender("x")),
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
	assert.Contains(t, verr.Error(), "age: ")
	assert.Contains(t, verr.Error(), "gender: ")

	_, ok := verr.On(models.FieldBio)
	assert.False(t, ok)
}
