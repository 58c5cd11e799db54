package models

// Tag is a label shared across all users. Names are unique system-wide,
// compared case-sensitively after trimming.
type Tag struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"type:varchar(50);uniqueIndex:uk_tags_name;not null" json:"name"`
	Color string `gorm:"type:char(7);not null" json:"color"`

	Tasks []Task `gorm:"many2many:task_tags" json:"-"`
}
