// Package profile holds the client-side profile editing core: it turns the
// fetched user record plus the edited form into a minimal, validated partial
// update and drives its submission.
package profile

import (
	"maps"
	"slices"

	"spill/models"
)

// Diff compares the edited form with the record it was seeded from and returns
// only the fields whose value changed.
//
// Optional text fields treat "" and null as the same value; clearing one sends
// null. Lists compare as multisets, so a reorder alone is not a change. A list
// or map edited down to nothing is sent as null, which the backend reads as
// "clear", not as "set to empty".
func Diff(original models.UserRecord, edited models.ProfileForm) models.UserUpdate {
	baseline := models.NewProfileForm(original)
	var update models.UserUpdate

	if edited.FirstName != baseline.FirstName {
		update.FirstName = text(edited.FirstName)
	}
	if edited.LastName != baseline.LastName {
		update.LastName = text(edited.LastName)
	}
	if !sameAge(edited.Age, baseline.Age) {
		if edited.Age == nil {
			update.Age = models.Null[int]()
		} else {
			update.Age = models.Value(*edited.Age)
		}
	}
	if edited.Gender != baseline.Gender {
		if edited.Gender == "" {
			update.Gender = models.Null[models.Gender]()
		} else {
			update.Gender = models.Value(edited.Gender)
		}
	}
	if edited.Bio != baseline.Bio {
		update.Bio = text(edited.Bio)
	}
	if !sameSet(edited.Interests, baseline.Interests) {
		update.Interests = list(edited.Interests)
	}
	if !sameSet(edited.PhotoURLs, baseline.PhotoURLs) {
		update.PhotoURLs = list(edited.PhotoURLs)
	}
	if !maps.Equal(edited.SocialLinks, baseline.SocialLinks) {
		if len(edited.SocialLinks) == 0 {
			update.SocialLinks = models.Null[models.SocialLinks]()
		} else {
			update.SocialLinks = models.Value(edited.SocialLinks.Clone())
		}
	}
	return update
}

func text(s string) models.Nullable[string] {
	if s == "" {
		return models.Null[string]()
	}
	return models.Value(s)
}

func list(items []string) models.Nullable[[]string] {
	if len(items) == 0 {
		return models.Null[[]string]()
	}
	return models.Value(slices.Clone(items))
}

func sameAge(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// sameSet compares two lists ignoring order; duplicates count.
func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x, y := slices.Clone(a), slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}
