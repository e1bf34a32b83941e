package models

// UserUpdate is a partial update of the editable profile fields. Absent
// fields are left untouched by the backend, null fields are cleared.
// Nickname is deliberately not part of it.
type UserUpdate struct {
	FirstName   Nullable[string]      `json:"first_name,omitzero"`
	LastName    Nullable[string]      `json:"last_name,omitzero"`
	Age         Nullable[int]         `json:"age,omitzero"`
	Gender      Nullable[Gender]      `json:"gender,omitzero"`
	Bio         Nullable[string]      `json:"bio,omitzero"`
	Interests   Nullable[[]string]    `json:"interests,omitzero"`
	PhotoURLs   Nullable[[]string]    `json:"photo_urls,omitzero"`
	SocialLinks Nullable[SocialLinks] `json:"social_links,omitzero"`
}

// Editable field names as they appear on the wire.
const (
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldAge         = "age"
	FieldGender      = "gender"
	FieldBio         = "bio"
	FieldInterests   = "interests"
	FieldPhotoURLs   = "photo_urls"
	FieldSocialLinks = "social_links"
)

// EditableFields lists every UserUpdate field in wire order.
var EditableFields = []string{
	FieldFirstName, FieldLastName, FieldAge, FieldGender,
	FieldBio, FieldInterests, FieldPhotoURLs, FieldSocialLinks,
}

// Fields returns the names of the fields present in the update, in wire order.
func (u UserUpdate) Fields() []string {
	present := map[string]bool{
		FieldFirstName:   u.FirstName.IsSet(),
		FieldLastName:    u.LastName.IsSet(),
		FieldAge:         u.Age.IsSet(),
		FieldGender:      u.Gender.IsSet(),
		FieldBio:         u.Bio.IsSet(),
		FieldInterests:   u.Interests.IsSet(),
		FieldPhotoURLs:   u.PhotoURLs.IsSet(),
		FieldSocialLinks: u.SocialLinks.IsSet(),
	}
	var fields []string
	for _, f := range EditableFields {
		if present[f] {
			fields = append(fields, f)
		}
	}
	return fields
}

// IsEmpty reports whether the update carries no field at all.
func (u UserUpdate) IsEmpty() bool {
	return len(u.Fields()) == 0
}
