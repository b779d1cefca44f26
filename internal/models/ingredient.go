package models

// Ingredient is a reference catalog entry. The same name may appear with
// different measurement units, so uniqueness is on the (name, unit) pair.
type Ingredient struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"size:200;not null;index;uniqueIndex:idx_ingredients_name_unit" json:"name"`
	MeasurementUnit string `gorm:"size:200;not null;uniqueIndex:idx_ingredients_name_unit" json:"measurement_unit"`
}
