package model

import "time"

// Contact is a message submitted through the contact form.
type Contact struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name      string    `gorm:"column:name;size:255" json:"name"`
	Email     string    `gorm:"column:email;size:255" json:"email"`
	Message   string    `gorm:"column:message;type:text" json:"message"`
	IPAddress string    `gorm:"column:ip_address;size:45" json:"ip_address"`
	UserAgent string    `gorm:"column:user_agent;type:text" json:"user_agent"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName returns the GORM table name.
func (Contact) TableName() string { return KindContact.Table() }

func (c *Contact) GetID() int64     { return c.ID }
func (c *Contact) EntityKind() Kind { return KindContact }

func (c *Contact) ToMap() map[string]any {
	return map[string]any{
		"id":         c.ID,
		"name":       c.Name,
		"email":      c.Email,
		"message":    c.Message,
		"ip_address": c.IPAddress,
		"user_agent": c.UserAgent,
		"created_at": isoTime(c.CreatedAt),
		"updated_at": isoTime(c.UpdatedAt),
	}
}

func (c *Contact) RemotePayload() map[string]any {
	return map[string]any{
		"name":       c.Name,
		"email":      c.Email,
		"message":    c.Message,
		"ip_address": c.IPAddress,
		"user_agent": c.UserAgent,
	}
}
