package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"spill/models"
)

func intPtr(n int) *int { return &n }

func sampleRecord() models.UserRecord {
	gender := "female"
	bio := "hello"
	return models.UserRecord{
		ID:          42,
		Username:    models.StringPtr("ada"),
		FirstName:   "Ada",
		LastName:    models.StringPtr("Lovelace"),
		Nickname:    "ada",
		Age:         intPtr(25),
		Gender:      &gender,
		Bio:         &bio,
		Interests:   []string{"chess", "math"},
		PhotoURLs:   []string{"https://cdn.example.com/1.jpg"},
		SocialLinks: map[string]string{"instagram": "https://instagram.com/ada"},
	}
}

func TestDiffUntouchedFormIsEmpty(t *testing.T) {
	record := sampleRecord()
	assert.True(t, Diff(record, models.NewProfileForm(record)).IsEmpty())
}

func TestDiffSingleField(t *testing.T) {
	record := sampleRecord()
	form := models.NewProfileForm(record)
	form.Age = intPtr(26)

	update := Diff(record, form)
	assert.Equal(t, []string{models.FieldAge}, update.Fields())
	age, ok := update.Age.Get()
	assert.True(t, ok)
	assert.Equal(t, 26, age)
}

func TestDiffClearedValuesBecomeNull(t *testing.T) {
	record := sampleRecord()
	form := models.NewProfileForm(record)
	form.LastName = ""
	form.Age = nil
	form.Gender = ""
	form.Bio = ""
	form.Interests = nil
	form.PhotoURLs = []string{}
	form.SocialLinks = models.SocialLinks{}

	update := Diff(record, form)
	assert.True(t, update.LastName.IsNull())
	assert.True(t, update.Age.IsNull())
	assert.True(t, update.Gender.IsNull())
	assert.True(t, update.Bio.IsNull())
	assert.True(t, update.Interests.IsNull())
	assert.True(t, update.PhotoURLs.IsNull())
	assert.True(t, update.SocialLinks.IsNull())
	assert.False(t, update.FirstName.IsSet())
}

func TestDiffListsIgnoreOrder(t *testing.T) {
	record := sampleRecord()
	form := models.NewProfileForm(record)
	form.Interests = []string{"math", "chess"}
	assert.False(t, Diff(record, form).Interests.IsSet())

	form.Interests = []string{"math", "chess", "chess"}
	assert.True(t, Diff(record, form).Interests.IsSet())
}

func TestDiffSendsWholeSocialMap(t *testing.T) {
	record := sampleRecord()
	form := models.NewProfileForm(record)
	form.SocialLinks[models.PlatformTikTok] = "https://tiktok.com/@ada"

	links, ok := Diff(record, form).SocialLinks.Get()
	assert.True(t, ok)
	assert.Equal(t, models.SocialLinks{
		models.PlatformInstagram: "https://instagram.com/ada",
		models.PlatformTikTok:    "https://tiktok.com/@ada",
	}, links)
}

func TestDiffIgnoresUnknownStoredValues(t *testing.T) {
	record := sampleRecord()
	odd := "robot"
	record.Gender = &odd
	record.SocialLinks["myspace"] = "https://myspace.com/ada"

	assert.True(t, Diff(record, models.NewProfileForm(record)).IsEmpty())
}
