package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"go.uber.org/zap"

	"spill/models"
	"spill/profile"
	"spill/telegram"
)

// ProfileNotifier is told about every stored profile change.
type ProfileNotifier interface {
	ProfileUpdated(record models.UserRecord)
}

type UserProfileService struct {
	Store    UserStore
	Photos   PhotoStorage
	Notifier ProfileNotifier
	Logger   *zap.Logger
	Now      func() time.Time
}

func NewUserProfileService(store UserStore, photos PhotoStorage, notifier ProfileNotifier, logger *zap.Logger) *UserProfileService {
	return &UserProfileService{
		Store:    store,
		Photos:   photos,
		Notifier: notifier,
		Logger:   logger,
		Now:      time.Now,
	}
}

// Login creates the profile on first sign-in and refreshes the fields Telegram
// owns on every later one. Editable fields are never overwritten here.
func (ups *UserProfileService) Login(ctx context.Context, user *telegram.WebAppUser) (*models.UserRecord, error) {
	now := ups.Now().UTC()
	record, err := ups.Store.Get(ctx, user.ID)
	switch {
	case errors.Is(err, ErrUserNotFound):
		record = &models.UserRecord{
			ID:             user.ID,
			FirstName:      user.FirstName,
			LastName:       models.StringPtr(user.LastName),
			Nickname:       defaultNickname(user),
			AllowDiscovery: true,
			CreatedAt:      now,
		}
		ups.Logger.Info("creating user profile", zap.Int64("user_id", user.ID))
	case err != nil:
		return nil, fmt.Errorf("failed to load user %d: %w", user.ID, err)
	}

	record.Username = models.StringPtr(user.Username)
	record.LanguageCode = models.StringPtr(user.LanguageCode)
	record.ProfilePhotoURL = models.StringPtr(user.PhotoURL)
	record.IsPremium = user.IsPremium
	record.UpdatedAt = now

	if err := ups.Store.Put(ctx, *record); err != nil {
		return nil, fmt.Errorf("failed to save user %d: %w", user.ID, err)
	}
	return record, nil
}

// GetProfile returns the stored record for a user.
func (ups *UserProfileService) GetProfile(ctx context.Context, userID int64) (*models.UserRecord, error) {
	return ups.Store.Get(ctx, userID)
}

// UpdateProfile uploads photos, appends their URLs to the photo list and
// applies the update. When the update carries photo_urls the uploads are
// appended to that list, otherwise to the stored one.
func (ups *UserProfileService) UpdateProfile(ctx context.Context, userID int64, update profile.ValidatedUpdate, photos []models.Attachment) (*models.UserRecord, error) {
	record, err := ups.Store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	changes := update.UserUpdate
	if len(photos) > 0 {
		base := record.PhotoURLs
		if changes.PhotoURLs.IsSet() {
			base, _ = changes.PhotoURLs.Get()
		}
		urls := slices.Clone(base)
		for _, photo := range photos {
			url, err := ups.Photos.Put(ctx, userID, photo)
			if err != nil {
				return nil, fmt.Errorf("failed to store photo %q: %w", photo.Name, err)
			}
			urls = append(urls, url)
		}
		changes.PhotoURLs = models.Value(urls)
	}

	updated := ApplyUpdate(*record, changes, ups.Now().UTC())
	if err := ups.Store.Put(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save user %d: %w", userID, err)
	}

	ups.Logger.Info("profile updated",
		zap.Int64("user_id", userID),
		zap.Strings("fields", changes.Fields()),
		zap.Int("photos", len(photos)))
	if ups.Notifier != nil {
		ups.Notifier.ProfileUpdated(updated)
	}
	return &updated, nil
}

// ApplyUpdate returns record with every present field of update written:
// values replace, nulls clear, absent fields are left alone.
func ApplyUpdate(record models.UserRecord, update models.UserUpdate, now time.Time) models.UserRecord {
	if update.FirstName.IsSet() {
		record.FirstName, _ = update.FirstName.Get()
	}
	if update.LastName.IsSet() {
		record.LastName = optional(update.LastName)
	}
	if update.Age.IsSet() {
		record.Age = optional(update.Age)
	}
	if update.Gender.IsSet() {
		record.Gender = nil
		if g, ok := update.Gender.Get(); ok {
			s := string(g)
			record.Gender = &s
		}
	}
	if update.Bio.IsSet() {
		record.Bio = optional(update.Bio)
	}
	if update.Interests.IsSet() {
		v, _ := update.Interests.Get()
		record.Interests = slices.Clone(v)
	}
	if update.PhotoURLs.IsSet() {
		v, _ := update.PhotoURLs.Get()
		record.PhotoURLs = slices.Clone(v)
	}
	if update.SocialLinks.IsSet() {
		record.SocialLinks = nil
		if links, ok := update.SocialLinks.Get(); ok && len(links) > 0 {
			record.SocialLinks = make(map[string]string, len(links))
			for p, link := range links {
				record.SocialLinks[string(p)] = link
			}
		}
	}
	record.UpdatedAt = now
	return record
}

func optional[T any](n models.Nullable[T]) *T {
	v, ok := n.Get()
	if !ok {
		return nil
	}
	return &v
}

func defaultNickname(user *telegram.WebAppUser) string {
	if user.Username != "" {
		return user.Username
	}
	return "user" + strconv.FormatInt(user.ID, 10)
}
