package models

import "time"

// UserRecord is the profile as the backend returns it. Clients treat it as
// read-only; it changes only through a confirmed UserUpdate.
type UserRecord struct {
	ID              int64             `dynamodbav:"id" json:"id"`                       // Telegram user id, partition key
	Username        *string           `dynamodbav:"username,omitempty" json:"username"` // Telegram handle
	FirstName       string            `dynamodbav:"first_name" json:"first_name"`
	LastName        *string           `dynamodbav:"last_name,omitempty" json:"last_name"`
	ProfilePhotoURL *string           `dynamodbav:"profile_photo_url,omitempty" json:"profile_photo_url"`
	LanguageCode    *string           `dynamodbav:"language_code,omitempty" json:"language_code"`
	Nickname        string            `dynamodbav:"nickname" json:"nickname"` // set once during onboarding
	Age             *int              `dynamodbav:"age,omitempty" json:"age"`
	Gender          *string           `dynamodbav:"gender,omitempty" json:"gender"`
	Bio             *string           `dynamodbav:"bio,omitempty" json:"bio"`
	Interests       []string          `dynamodbav:"interests,omitempty" json:"interests"`
	PhotoURLs       []string          `dynamodbav:"photo_urls,omitempty" json:"photo_urls"`
	SocialLinks     map[string]string `dynamodbav:"social_links,omitempty" json:"social_links"`
	AllowDiscovery  bool              `dynamodbav:"allow_discovery" json:"allow_discovery"`
	IsBanned        bool              `dynamodbav:"is_banned" json:"is_banned"`
	BannedAt        *time.Time        `dynamodbav:"banned_at,omitempty" json:"banned_at"`
	BannedReason    *string           `dynamodbav:"banned_reason,omitempty" json:"banned_reason"`
	StarsBalance    int64             `dynamodbav:"stars_balance" json:"stars_balance"`
	IsPremium       bool              `dynamodbav:"is_premium" json:"is_premium"`
	CreatedAt       time.Time         `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt       time.Time         `dynamodbav:"updated_at" json:"updated_at"`
}

// Handle returns the Telegram username, or "" when the user has none.
func (u UserRecord) Handle() string {
	if u.Username == nil {
		return ""
	}
	return *u.Username
}

// StringValue dereferences an optional string, treating nil as "".
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr returns nil for "" and a pointer to s otherwise.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
