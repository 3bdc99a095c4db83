package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aig-studio/artist-image-generator/common"
	"github.com/aig-studio/artist-image-generator/common/config"
	"github.com/aig-studio/artist-image-generator/common/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	OptionName         = "artist_image_generator_option_name"
	FieldOpenAIAPIKey  = "artist_image_generator_openai_api_key_0"
	FieldLicenseKey    = "artist_image_generator_aig_licence_key_0"
	OptionLicenseCache = "artist_image_generator_aig_licence_object_0"
)

var ErrOptionNotFound = errors.New("option not found")

type Option struct {
	Key   string `json:"key" gorm:"primaryKey;size:191"`
	Value string `json:"value" gorm:"type:text"`
}

// Settings is the plugin-level configuration stored under OptionName.
type Settings struct {
	OpenAIAPIKey string `json:"artist_image_generator_openai_api_key_0,omitempty"`
	LicenseKey   string `json:"artist_image_generator_aig_licence_key_0,omitempty"`
}

func (s Settings) IsSettingUp() bool {
	return strings.TrimSpace(s.OpenAIAPIKey) != ""
}

// OptionStore is a key/value store on the options table with an optional redis read-through cache.
type OptionStore struct {
	db *gorm.DB
}

func NewOptionStore(db *gorm.DB) *OptionStore {
	return &OptionStore{db: db}
}

func optionCacheKey(key string) string {
	return "option:" + key
}

func (s *OptionStore) Get(ctx context.Context, key string) (string, error) {
	if common.RedisEnabled {
		value, err := common.RedisGet(optionCacheKey(key))
		if err == nil {
			return value, nil
		}
		if !errors.Is(err, common.ErrRedisNil) {
			logger.Warnf(ctx, "redis get option %s: %s", key, err.Error())
		}
	}
	var option Option
	err := s.db.WithContext(ctx).Where(&Option{Key: key}).First(&option).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrOptionNotFound
	}
	if err != nil {
		return "", err
	}
	s.cache(ctx, key, option.Value)
	return option.Value, nil
}

func (s *OptionStore) Set(ctx context.Context, key string, value string) error {
	option := Option{Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&option).Error
	if err != nil {
		return fmt.Errorf("failed to save option %s: %w", key, err)
	}
	s.cache(ctx, key, value)
	return nil
}

func (s *OptionStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Delete(&Option{Key: key}).Error; err != nil {
		return err
	}
	if common.RedisEnabled {
		if err := common.RedisDel(optionCacheKey(key)); err != nil {
			logger.Warnf(ctx, "redis del option %s: %s", key, err.Error())
		}
	}
	return nil
}

func (s *OptionStore) cache(ctx context.Context, key string, value string) {
	if !common.RedisEnabled {
		return
	}
	err := common.RedisSet(optionCacheKey(key), value, time.Duration(config.OptionCacheSeconds)*time.Second)
	if err != nil {
		logger.Warnf(ctx, "redis set option %s: %s", key, err.Error())
	}
}

// LoadSettings returns empty settings when nothing has been saved yet.
func (s *OptionStore) LoadSettings(ctx context.Context) (Settings, error) {
	var settings Settings
	raw, err := s.Get(ctx, OptionName)
	if errors.Is(err, ErrOptionNotFound) {
		return settings, nil
	}
	if err != nil {
		return settings, err
	}
	if err = json.Unmarshal([]byte(raw), &settings); err != nil {
		return settings, fmt.Errorf("malformed settings: %w", err)
	}
	return settings, nil
}

func (s *OptionStore) SaveSettings(ctx context.Context, settings Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return s.Set(ctx, OptionName, string(raw))
}
