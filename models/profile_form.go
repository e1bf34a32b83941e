package models

// ProfileForm is the live, editable state of the profile screen.
type ProfileForm struct {
	FirstName   string
	LastName    string
	Age         *int
	Gender      Gender // "" when nothing is selected
	Bio         string
	Interests   []string
	PhotoURLs   []string
	SocialLinks SocialLinks
}

// NewProfileForm seeds the form from a fetched record. Missing values become
// zero values, a stored gender outside the closed set shows as unselected and
// links for unsupported platforms are dropped.
func NewProfileForm(u UserRecord) ProfileForm {
	form := ProfileForm{
		FirstName:   u.FirstName,
		LastName:    StringValue(u.LastName),
		Bio:         StringValue(u.Bio),
		Interests:   append([]string(nil), u.Interests...),
		PhotoURLs:   append([]string(nil), u.PhotoURLs...),
		SocialLinks: SocialLinks{},
	}
	if u.Age != nil {
		age := *u.Age
		form.Age = &age
	}
	if g, ok := ParseGender(StringValue(u.Gender)); ok {
		form.Gender = g
	}
	for k, v := range u.SocialLinks {
		if p, ok := ParseSocialPlatform(k); ok {
			form.SocialLinks[p] = v
		}
	}
	return form
}

// Clone returns a deep copy so callers cannot alias session state.
func (f ProfileForm) Clone() ProfileForm {
	out := f
	if f.Age != nil {
		age := *f.Age
		out.Age = &age
	}
	out.Interests = append([]string(nil), f.Interests...)
	out.PhotoURLs = append([]string(nil), f.PhotoURLs...)
	out.SocialLinks = f.SocialLinks.Clone()
	return out
}
