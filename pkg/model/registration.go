package model

import "time"

// Registration is a piano donation registration submitted through the
// public form.
type Registration struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Manufacturer string    `gorm:"column:manufacturer;size:255;not null" json:"manufacturer"`
	Model        string    `gorm:"column:model;size:255;not null" json:"model"`
	Serial       string    `gorm:"column:serial;size:100;not null" json:"serial"`
	Year         int       `gorm:"column:year;not null" json:"year"`
	Height       string    `gorm:"column:height;size:50;not null" json:"height"`
	Finish       string    `gorm:"column:finish;size:100;not null" json:"finish"`
	ColorWood    string    `gorm:"column:color_wood;size:255;not null" json:"color_wood"`
	CityState    string    `gorm:"column:city_state;size:255;not null" json:"city_state"`
	Access       string    `gorm:"column:access;size:255" json:"access"`
	IPAddress    string    `gorm:"column:ip_address;size:45" json:"ip_address"`
	UserAgent    string    `gorm:"column:user_agent;type:text" json:"user_agent"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName returns the GORM table name.
func (Registration) TableName() string { return KindRegistration.Table() }

func (r *Registration) GetID() int64     { return r.ID }
func (r *Registration) EntityKind() Kind { return KindRegistration }

func (r *Registration) ToMap() map[string]any {
	return map[string]any{
		"id":           r.ID,
		"manufacturer": r.Manufacturer,
		"model":        r.Model,
		"serial":       r.Serial,
		"year":         r.Year,
		"height":       r.Height,
		"finish":       r.Finish,
		"color_wood":   r.ColorWood,
		"access":       r.Access,
		"city_state":   r.CityState,
		"ip_address":   r.IPAddress,
		"user_agent":   r.UserAgent,
		"created_at":   isoTime(r.CreatedAt),
		"updated_at":   isoTime(r.UpdatedAt),
	}
}

func (r *Registration) RemotePayload() map[string]any {
	return map[string]any{
		"manufacturer": r.Manufacturer,
		"model":        r.Model,
		"serial":       r.Serial,
		"year":         r.Year,
		"height":       r.Height,
		"finish":       r.Finish,
		"color_wood":   r.ColorWood,
		"access":       r.Access,
		"city_state":   r.CityState,
		"ip_address":   r.IPAddress,
		"user_agent":   r.UserAgent,
	}
}
