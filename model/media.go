package model

import (
	"context"
	"errors"

	"github.com/aig-studio/artist-image-generator/common/helper"
	"gorm.io/gorm"
)

var ErrMediaNotFound = errors.New("media not found")

// Media is an image imported into the library.
type Media struct {
	Id          int64  `json:"id"`
	Title       string `json:"title" gorm:"size:255"`
	AltText     string `json:"alt_text" gorm:"size:255"`
	FileName    string `json:"file_name" gorm:"size:255"`
	MimeType    string `json:"mime_type" gorm:"size:64"`
	Bytes       int64  `json:"bytes"`
	StorageKey  string `json:"storage_key" gorm:"size:512"`
	Url         string `json:"url" gorm:"size:1024"`
	SourceUrl   string `json:"source_url" gorm:"type:text"`
	CreatedTime int64  `json:"created_time" gorm:"bigint;index"`
}

type MediaStore struct {
	db *gorm.DB
}

func NewMediaStore(db *gorm.DB) *MediaStore {
	return &MediaStore{db: db}
}

func (s *MediaStore) Insert(ctx context.Context, media *Media) error {
	if media.CreatedTime == 0 {
		media.CreatedTime = helper.GetTimestamp()
	}
	return s.db.WithContext(ctx).Create(media).Error
}

func (s *MediaStore) GetById(ctx context.Context, id int64) (*Media, error) {
	var media Media
	err := s.db.WithContext(ctx).First(&media, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMediaNotFound
	}
	if err != nil {
		return nil, err
	}
	return &media, nil
}
