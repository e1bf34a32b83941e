package models

import "strings"

const (
	// InitDataHeader carries the host's signed init data on every request.
	InitDataHeader = "X-Telegram-InitData"
	// PhotosField is the multipart field name of photo attachments.
	PhotosField = "photos"
)

// Gender is the closed set of values the profile form offers.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Genders lists the supported genders in display order.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

func (g Gender) Valid() bool {
	for _, known := range Genders {
		if g == known {
			return true
		}
	}
	return false
}

// ParseGender maps a stored value onto the closed set.
func ParseGender(s string) (Gender, bool) {
	g := Gender(strings.ToLower(strings.TrimSpace(s)))
	return g, g.Valid()
}

// SocialPlatform is one of the networks a profile can link to.
type SocialPlatform string

const (
	PlatformInstagram SocialPlatform = "instagram"
	PlatformTwitter   SocialPlatform = "twitter"
	PlatformTikTok    SocialPlatform = "tiktok"
	PlatformSnapchat  SocialPlatform = "snapchat"
)

// SocialPlatforms lists the supported platforms in display order.
var SocialPlatforms = []SocialPlatform{PlatformInstagram, PlatformTwitter, PlatformTikTok, PlatformSnapchat}

func (p SocialPlatform) Valid() bool {
	for _, known := range SocialPlatforms {
		if p == known {
			return true
		}
	}
	return false
}

// ParseSocialPlatform lowercases s and checks it against the supported set.
func ParseSocialPlatform(s string) (SocialPlatform, bool) {
	p := SocialPlatform(strings.ToLower(strings.TrimSpace(s)))
	return p, p.Valid()
}

// SocialLinks holds at most one link per platform.
type SocialLinks map[SocialPlatform]string

// Clone returns an independent copy; nil stays nil.
func (l SocialLinks) Clone() SocialLinks {
	if l == nil {
		return nil
	}
	out := make(SocialLinks, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// MaxAttachmentBytes is the default upper bound for a photo attachment (5 MiB).
const MaxAttachmentBytes = 5 * 1024 * 1024

// UsersTable is the DynamoDB table name for user records
const UsersTable = "SpillUsers"
