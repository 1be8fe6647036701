package domain

import (
	"fmt"
	"time"
)

// AssetType discriminates the closed set of asset variants.
type AssetType string

const (
	TypePassage AssetType = "PASSAGE"
	TypeAudio   AssetType = "AUDIO"
	TypeImage   AssetType = "IMAGE"
)

// ResolveAssetType maps a raw tag to a member of the asset family.
func ResolveAssetType(tag string) (AssetType, error) {
	switch at := AssetType(tag); at {
	case TypePassage, TypeAudio, TypeImage:
		return at, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAssetType, tag)
}

// AssetStatus is the publication status of an asset.
type AssetStatus string

const (
	StatusDraft     AssetStatus = "DRAFT"
	StatusPublished AssetStatus = "PUBLISHED"
	StatusArchived  AssetStatus = "ARCHIVED"
)

// KnownStatus reports whether s is a member of the status enumeration.
func KnownStatus(s AssetStatus) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// AssetBase carries the fields shared by every asset variant.
type AssetBase struct {
	AssetID            string           `json:"assetId"`
	AssetType          AssetType        `json:"assetType"`
	Title              LocalizedString  `json:"title"`
	Description        *LocalizedString `json:"description,omitempty"`
	Difficulty         DifficultyDetail `json:"difficulty"`
	LearningObjectives []string         `json:"learningObjectives"`
	Tags               []string         `json:"tags"`
	Status             AssetStatus      `json:"status"`
	Version            int              `json:"version"`
	Source             string           `json:"source,omitempty"`
	CreatedBy          string           `json:"createdBy,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

// Base returns the embedded common fields.
func (b *AssetBase) Base() *AssetBase { return b }

// AnyAsset is the discriminated union over all asset variants.
type AnyAsset interface {
	Base() *AssetBase
	Type() AssetType
	isAsset()
}

// PassageAsset is a reading passage.
type PassageAsset struct {
	AssetBase
	Content string `json:"content"`
}

func (a *PassageAsset) Type() AssetType { return TypePassage }
func (a *PassageAsset) isAsset()        {}

// AudioAsset is an audio clip, e.g. for listening comprehension.
type AudioAsset struct {
	AssetBase
	AudioURL        string   `json:"audioUrl"`
	DurationSeconds float64  `json:"durationSeconds"`
	Transcript      *string  `json:"transcript,omitempty"`
	SpeakerInfo     []string `json:"speakerInfo,omitempty"`
}

func (a *AudioAsset) Type() AssetType { return TypeAudio }
func (a *AudioAsset) isAsset()        {}

// ImageAsset is a picture, e.g. for picture-description questions.
type ImageAsset struct {
	AssetBase
	ImageURL string `json:"imageUrl"`
}

func (a *ImageAsset) Type() AssetType { return TypeImage }
func (a *ImageAsset) isAsset()        {}
