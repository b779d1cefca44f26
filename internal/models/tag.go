package models

// Tag labels recipes for filtering (e.g. breakfast, lunch, dinner).
// Name, color and slug are each unique across the table; tags are reference
// data managed through the import command, not the public API.
type Tag struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:200;uniqueIndex;not null" json:"name"`
	Color string `gorm:"size:7;uniqueIndex;not null" json:"color"`
	Slug  string `gorm:"size:200;uniqueIndex;not null" json:"slug"`
}
