package service

import (
	"fmt"

	"github.com/fernet/fernet-go"
	"github.com/ekaraca/bist-portfolio-backend/internal/apperrors"
	"github.com/ekaraca/bist-portfolio-backend/internal/repository"
)

// Setting keys in the system_setting table.
const (
	SettingCollectAPIKey = "collectapi_key"
)

// SettingsService stores system settings. The market-data API key is fernet
// encrypted before it touches the database and decrypted only when the
// ingestion run needs it.
type SettingsService struct {
	settingRepo *repository.SettingRepository
	fernetKey   *fernet.Key
}

// NewSettingsService creates a new SettingsService. fernetKey is the base64
// key from configuration.
func NewSettingsService(settingRepo *repository.SettingRepository, fernetKey string) (*SettingsService, error) {
	key, err := fernet.DecodeKey(fernetKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode fernet key: %w", err)
	}
	return &SettingsService{
		settingRepo: settingRepo,
		fernetKey:   key,
	}, nil
}

// SetAPIKey encrypts and stores the market-data API key.
func (s *SettingsService) SetAPIKey(apiKey string) error {
	token, err := fernet.EncryptAndSign([]byte(apiKey), s.fernetKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt api key: %w", err)
	}
	return s.settingRepo.SetSetting(SettingCollectAPIKey, string(token))
}

// GetAPIKey retrieves and decrypts the stored market-data API key.
// Returns ErrAPIKeyMissing when no key has been stored or the stored token
// does not verify against the configured fernet key.
func (s *SettingsService) GetAPIKey() (string, error) {
	token, err := s.settingRepo.GetSetting(SettingCollectAPIKey)
	if err == apperrors.ErrSettingNotFound {
		return "", apperrors.ErrAPIKeyMissing
	}
	if err != nil {
		return "", err
	}

	plaintext := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{s.fernetKey})
	if plaintext == nil {
		return "", apperrors.ErrAPIKeyMissing
	}

	return string(plaintext), nil
}

// HasAPIKey reports whether a decryptable API key is stored.
func (s *SettingsService) HasAPIKey() bool {
	_, err := s.GetAPIKey()
	return err == nil
}
