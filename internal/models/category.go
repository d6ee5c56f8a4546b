package models

// Category groups related skills.
type Category struct {
	CategoryID   uint    `gorm:"primaryKey" json:"category_id"`
	CategoryName string  `gorm:"size:255;not null" json:"category_name"`
	Description  *string `gorm:"type:text" json:"description"`
	Skills       []Skill `gorm:"foreignKey:CategoryID;references:CategoryID" json:"-"`
}

// TableName specifies the table name for GORM.
func (Category) TableName() string {
	return "categories"
}

// UniqueSkillNames returns the distinct names of the preloaded skills in
// first-seen order.
func (c *Category) UniqueSkillNames() []string {
	seen := make(map[string]struct{}, len(c.Skills))
	names := make([]string, 0, len(c.Skills))
	for _, skill := range c.Skills {
		if _, ok := seen[skill.SkillName]; ok {
			continue
		}
		seen[skill.SkillName] = struct{}{}
		names = append(names, skill.SkillName)
	}
	return names
}
