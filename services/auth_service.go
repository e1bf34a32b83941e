package services

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"spill/telegram"
)

var ErrUnauthorized = errors.New("missing or invalid telegram init data")

// TelegramAuthService turns the raw init data a client sends into the
// Telegram user it was issued for.
type TelegramAuthService struct {
	BotToken string
	MaxAge   time.Duration
	Logger   *zap.Logger
	Now      func() time.Time
}

func NewTelegramAuthService(botToken string, maxAge time.Duration, logger *zap.Logger) *TelegramAuthService {
	if botToken == "" {
		logger.Warn("TELEGRAM_BOT_TOKEN is empty, init data signatures are not checked")
	}
	return &TelegramAuthService{BotToken: botToken, MaxAge: maxAge, Logger: logger, Now: time.Now}
}

// Authenticate parses raw init data and, when a bot token is configured,
// verifies its signature and age.
func (s *TelegramAuthService) Authenticate(raw string) (*telegram.WebAppUser, error) {
	data, err := telegram.ParseInitData(raw)
	if err != nil {
		return nil, errors.Join(ErrUnauthorized, err)
	}
	if s.BotToken != "" {
		if err := data.Verify(s.BotToken, s.MaxAge, s.Now()); err != nil {
			s.Logger.Debug("init data rejected", zap.Error(err))
			return nil, errors.Join(ErrUnauthorized, err)
		}
	}
	if data.User == nil || data.User.ID == 0 {
		return nil, ErrUnauthorized
	}
	return data.User, nil
}
