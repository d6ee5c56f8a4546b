package models

// Skill is a teachable/learnable topic that belongs to exactly one Category.
type Skill struct {
	SkillID     uint      `gorm:"primaryKey" json:"skill_id"`
	SkillName   string    `gorm:"size:255;not null" json:"skill_name"`
	Description *string   `gorm:"type:text" json:"description"`
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	Category    *Category `gorm:"foreignKey:CategoryID;references:CategoryID" json:"-"`
}

// TableName specifies the table name for GORM.
func (Skill) TableName() string {
	return "skills"
}
