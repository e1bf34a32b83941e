package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserUpdateMarshalOmitsAbsentFields(t *testing.T) {
	tests := []struct {
		name   string
		update UserUpdate
		want   string
	}{
		{"empty", UserUpdate{}, `{}`},
		{"value", UserUpdate{Age: Value(26)}, `{"age":26}`},
		{"null", UserUpdate{Bio: Null[string]()}, `{"bio":null}`},
		{
			"mixed",
			UserUpdate{
				FirstName:   Value("Ada"),
				Gender:      Value(GenderFemale),
				Interests:   Value([]string{"chess"}),
				SocialLinks: Value(SocialLinks{PlatformInstagram: "https://instagram.com/ada"}),
			},
			`{"first_name":"Ada","gender":"female","interests":["chess"],"social_links":{"instagram":"https://instagram.com/ada"}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.update)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestUserUpdateUnmarshalKeepsThreeStates(t *testing.T) {
	var u UserUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"age":null,"bio":"hi","photo_urls":[]}`), &u))

	assert.False(t, u.FirstName.IsSet())
	assert.True(t, u.Age.IsSet())
	assert.True(t, u.Age.IsNull())

	bio, ok := u.Bio.Get()
	assert.True(t, ok)
	assert.Equal(t, "hi", bio)

	urls, ok := u.PhotoURLs.Get()
	assert.True(t, ok)
	assert.Empty(t, urls)

	assert.Equal(t, []string{FieldAge, FieldBio, FieldPhotoURLs}, u.Fields())
	assert.False(t, u.IsEmpty())
	assert.True(t, UserUpdate{}.IsEmpty())
}

func TestNullableRejectsWrongType(t *testing.T) {
	var u UserUpdate
	assert.Error(t, json.Unmarshal([]byte(`{"age":"old"}`), &u))
}
