package models

import "time"

// MenuItem is one orderable item from the venue catalog (food, drink or
// entertainment). Entertainment items carry a unit label ("/1 giờ") and
// their time-based price lives on the table rate, not here.
type MenuItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Price     int64     `gorm:"not null;default:0" json:"price"` // VND
	Kind      string    `gorm:"type:varchar(20);not null" json:"kind"`
	Unit      string    `gorm:"type:varchar(20)" json:"unit,omitempty"`
	ImageURL  string    `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
