package model

import "time"

// Requirements is an institutional requirements submission. All six
// content fields are optional at the storage level; the submission layer
// enforces that at least one is present.
type Requirements struct {
	ID            int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	SchoolName    string    `gorm:"column:school_name;type:text" json:"school_name"`
	CurrentPianos string    `gorm:"column:current_pianos;type:text" json:"current_pianos"`
	PreferredType string    `gorm:"column:preferred_type;type:text" json:"preferred_type"`
	TeacherName   string    `gorm:"column:teacher_name;type:text" json:"teacher_name"`
	Background    string    `gorm:"column:background;type:text" json:"background"`
	Commitment    string    `gorm:"column:commitment;type:text" json:"commitment"`
	IPAddress     string    `gorm:"column:ip_address;size:45" json:"ip_address"`
	UserAgent     string    `gorm:"column:user_agent;type:text" json:"user_agent"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName returns the GORM table name.
func (Requirements) TableName() string { return KindRequirements.Table() }

func (r *Requirements) GetID() int64     { return r.ID }
func (r *Requirements) EntityKind() Kind { return KindRequirements }

func (r *Requirements) ToMap() map[string]any {
	return map[string]any{
		"id":             r.ID,
		"school_name":    r.SchoolName,
		"current_pianos": r.CurrentPianos,
		"preferred_type": r.PreferredType,
		"teacher_name":   r.TeacherName,
		"background":     r.Background,
		"commitment":     r.Commitment,
		"ip_address":     r.IPAddress,
		"user_agent":     r.UserAgent,
		"created_at":     isoTime(r.CreatedAt),
		"updated_at":     isoTime(r.UpdatedAt),
	}
}

func (r *Requirements) RemotePayload() map[string]any {
	return map[string]any{
		"school_name":    r.SchoolName,
		"current_pianos": r.CurrentPianos,
		"preferred_type": r.PreferredType,
		"teacher_name":   r.TeacherName,
		"background":     r.Background,
		"commitment":     r.Commitment,
		"ip_address":     r.IPAddress,
		"user_agent":     r.UserAgent,
	}
}
