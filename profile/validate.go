package profile

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"spill/models"
)

const (
	MinAge = 1
	MaxAge = 120
)

// ValidatedUpdate is a UserUpdate that passed Validate. Transports only
// accept this type, so nothing unchecked reaches the network.
type ValidatedUpdate struct {
	models.UserUpdate
}

// ValidationError maps field paths to human-readable messages. Each violated
// field has exactly one entry, keyed by the dotted path of its first problem
// (for example "age", "photo_urls.0" or "social_links.myspace").
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	paths := make([]string, 0, len(e.Fields))
	for p := range e.Fields {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	parts := make([]string, 0, len(paths))
	for _, p := range paths {
		parts = append(parts, p+": "+e.Fields[p])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// On returns the message recorded for field or for any path nested under it.
func (e *ValidationError) On(field string) (string, bool) {
	if e == nil {
		return "", false
	}
	if msg, ok := e.Fields[field]; ok {
		return msg, true
	}
	for path, msg := range e.Fields {
		if strings.HasPrefix(path, field+".") {
			return msg, true
		}
	}
	return "", false
}

func (e *ValidationError) add(path, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[path] = msg
}

// Validate checks a candidate update field by field and returns the accepted,
// normalized payload or a *ValidationError listing every violated field.
// There are no cross-field rules and no length caps; those belong to the backend.
func Validate(update models.UserUpdate) (*ValidatedUpdate, error) {
	verr := &ValidationError{}
	out := update

	if age, ok := update.Age.Get(); ok && (age < MinAge || age > MaxAge) {
		verr.add(models.FieldAge, fmt.Sprintf("Age must be between %d and %d", MinAge, MaxAge))
	}

	if g, ok := update.Gender.Get(); ok && !g.Valid() {
		verr.add(models.FieldGender, "Gender must be one of: "+joinGenders())
	}

	if items, ok := update.Interests.Get(); ok {
		out.Interests = models.Value(trimAll(items))
	}

	if urls, ok := update.PhotoURLs.Get(); ok {
		cleaned := trimAll(urls)
		for i, raw := range cleaned {
			if !isAbsoluteURL(raw) {
				verr.add(models.FieldPhotoURLs+"."+strconv.Itoa(i), "Invalid url")
				break
			}
		}
		out.PhotoURLs = models.Value(cleaned)
	}

	if links, ok := update.SocialLinks.Get(); ok {
		cleaned := make(models.SocialLinks, len(links))
		for _, platform := range sortedPlatforms(links) {
			link := strings.TrimSpace(links[platform])
			path := models.FieldSocialLinks + "." + string(platform)
			if !platform.Valid() {
				verr.add(path, "Unsupported platform")
				break
			}
			if link == "" {
				verr.add(path, "Link must not be empty")
				break
			}
			cleaned[platform] = link
		}
		out.SocialLinks = models.Value(cleaned)
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return &ValidatedUpdate{UserUpdate: out}, nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}

func trimAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

func sortedPlatforms(links models.SocialLinks) []models.SocialPlatform {
	keys := make([]models.SocialPlatform, 0, len(links))
	for k := range links {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func joinGenders() string {
	names := make([]string, len(models.Genders))
	for i, g := range models.Genders {
		names[i] = string(g)
	}
	return strings.Join(names, ", ")
}
