package postgresadapter

import (
	"encoding/json"
	"time"

	"pressroom/contexts/release-lifecycle/release-service/domain/entities"
)

type releaseModel struct {
	ReleaseID         string     `gorm:"column:release_id;primaryKey"`
	Title             string     `gorm:"column:title"`
	Subtitle          string     `gorm:"column:subtitle"`
	Content           string     `gorm:"column:content"`
	Author            string     `gorm:"column:author"`
	ClientName        string     `gorm:"column:client_name"`
	ClientType        string     `gorm:"column:client_type;index"`
	MediaOutlet       string     `gorm:"column:media_outlet"`
	PublicationURL    string     `gorm:"column:publication_url"`
	PublicationDate   *time.Time `gorm:"column:publication_date"`
	Category          string     `gorm:"column:category"`
	Region            string     `gorm:"column:region"`
	Status            string     `gorm:"column:status;index"`
	TargetJournalists string     `gorm:"column:target_journalists"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
	SubmittedAt       *time.Time `gorm:"column:submitted_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at"`
	Version           int64      `gorm:"column:version"`
}

func (releaseModel) TableName() string {
	return "releases"
}

type moderationActionModel struct {
	ActionID      string    `gorm:"column:action_id;primaryKey"`
	ReleaseID     string    `gorm:"column:release_id;index"`
	ModeratorID   string    `gorm:"column:moderator_id"`
	ModeratorName string    `gorm:"column:moderator_name"`
	Action        string    `gorm:"column:action"`
	Comments      string    `gorm:"column:comments"`
	EditedContent string    `gorm:"column:edited_content"`
	CreatedAt     time.Time `gorm:"column:created_at;index"`
}

func (moderationActionModel) TableName() string {
	return "release_moderation_actions"
}

func releaseModelFromEntity(release entities.Release) releaseModel {
	return releaseModel{
		ReleaseID:         release.ReleaseID,
		Title:             release.Title,
		Subtitle:          release.Subtitle,
		Content:           release.Content,
		Author:            release.Author,
		ClientName:        release.ClientName,
		ClientType:        string(release.ClientType),
		MediaOutlet:       release.MediaOutlet,
		PublicationURL:    release.PublicationURL,
		PublicationDate:   normalizeOptionalTime(release.PublicationDate),
		Category:          release.Category,
		Region:            release.Region,
		Status:            string(release.Status),
		TargetJournalists: encodeStrings(release.TargetJournalists),
		CreatedAt:         release.CreatedAt.UTC(),
		SubmittedAt:       normalizeOptionalTime(release.SubmittedAt),
		UpdatedAt:         release.UpdatedAt.UTC(),
		Version:           release.Version,
	}
}

func releaseUpdatesFromEntity(release entities.Release, version int64) map[string]any {
	return map[string]any{
		"title":              release.Title,
		"subtitle":           release.Subtitle,
		"content":            release.Content,
		"author":             release.Author,
		"client_name":        release.ClientName,
		"client_type":        string(release.ClientType),
		"media_outlet":       release.MediaOutlet,
		"publication_url":    release.PublicationURL,
		"publication_date":   normalizeOptionalTime(release.PublicationDate),
		"category":           release.Category,
		"region":             release.Region,
		"status":             string(release.Status),
		"target_journalists": encodeStrings(release.TargetJournalists),
		"submitted_at":       normalizeOptionalTime(release.SubmittedAt),
		"updated_at":         release.UpdatedAt.UTC(),
		"version":            version,
	}
}

func (m releaseModel) toEntity() entities.Release {
	return entities.Release{
		ReleaseID:         m.ReleaseID,
		Title:             m.Title,
		Subtitle:          m.Subtitle,
		Content:           m.Content,
		Author:            m.Author,
		ClientName:        m.ClientName,
		ClientType:        entities.ClientType(m.ClientType),
		MediaOutlet:       m.MediaOutlet,
		PublicationURL:    m.PublicationURL,
		PublicationDate:   normalizeOptionalTime(m.PublicationDate),
		Category:          m.Category,
		Region:            m.Region,
		Status:            entities.ReleaseStatus(m.Status),
		TargetJournalists: decodeStrings(m.TargetJournalists),
		CreatedAt:         m.CreatedAt.UTC(),
		SubmittedAt:       normalizeOptionalTime(m.SubmittedAt),
		UpdatedAt:         m.UpdatedAt.UTC(),
		Version:           m.Version,
	}
}

func actionModelFromEntity(action entities.ModerationAction) moderationActionModel {
	return moderationActionModel{
		ActionID:      action.ActionID,
		ReleaseID:     action.ReleaseID,
		ModeratorID:   action.ModeratorID,
		ModeratorName: action.ModeratorName,
		Action:        string(action.Action),
		Comments:      action.Comments,
		EditedContent: action.EditedContent,
		CreatedAt:     action.CreatedAt.UTC(),
	}
}

func (m moderationActionModel) toEntity() entities.ModerationAction {
	return entities.ModerationAction{
		ActionID:      m.ActionID,
		ReleaseID:     m.ReleaseID,
		ModeratorID:   m.ModeratorID,
		ModeratorName: m.ModeratorName,
		Action:        entities.ModerationActionType(m.Action),
		Comments:      m.Comments,
		EditedContent: m.EditedContent,
		CreatedAt:     m.CreatedAt.UTC(),
	}
}

func encodeStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func decodeStrings(raw string) []string {
	if raw == "" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil
	}
	if len(values) == 0 {
		return nil
	}
	return values
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	normalized := value.UTC()
	return &normalized
}
