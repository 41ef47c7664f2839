package models

type Role struct {
	ID   string `gorm:"primaryKey;size:64" json:"id"`
	Name string `gorm:"size:100;uniqueIndex" json:"name"`
}
