package model

import "time"

// SystemLog is an append-only operational log entry. Data holds an
// optional JSON-serialized payload. Unlike the submission kinds, entries
// are never updated, so there is no updated_at column.
type SystemLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Level     string    `gorm:"column:level;size:20;not null" json:"level"`
	Message   string    `gorm:"column:message;type:text;not null" json:"message"`
	Data      string    `gorm:"column:data;type:text" json:"data"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName returns the GORM table name.
func (SystemLog) TableName() string { return KindSystemLog.Table() }

func (l *SystemLog) GetID() int64     { return l.ID }
func (l *SystemLog) EntityKind() Kind { return KindSystemLog }

func (l *SystemLog) ToMap() map[string]any {
	return map[string]any{
		"id":         l.ID,
		"level":      l.Level,
		"message":    l.Message,
		"data":       l.Data,
		"created_at": isoTime(l.CreatedAt),
	}
}

func (l *SystemLog) RemotePayload() map[string]any {
	return map[string]any{
		"level":   l.Level,
		"message": l.Message,
		"data":    l.Data,
	}
}
