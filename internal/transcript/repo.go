package transcript

import (
	"context"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// Record appends one conversation line. Satisfies frontdesk.Transcript.
func (r *Repo) Record(ctx context.Context, sessionID, role, content string) error {
	return r.db.WithContext(ctx).Create(&Message{
		SessionID: sessionID,
		Role:      role,
		Content:   content,
	}).Error
}

// ListBySession returns messages in DESC id order (newest -> oldest).
func (r *Repo) ListBySession(ctx context.Context, sessionID string, limit int) ([]Message, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var msgs []Message
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id DESC").
		Limit(limit).
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}
