package models

// Suggested values for ExperienceLevel and ProficiencyGoal. They are not enforced.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// UserTeachSkill records that a user can teach a skill.
// The composite primary key allows at most one row per (user, skill).
type UserTeachSkill struct {
	UserID          uint    `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	SkillID         uint    `gorm:"primaryKey;autoIncrement:false;index" json:"skill_id"`
	ExperienceLevel *string `gorm:"size:50" json:"experience_level"`
	YearsExperience *int    `json:"years_experience"`
	User            *User   `gorm:"foreignKey:UserID;references:UserID" json:"-"`
	Skill           *Skill  `gorm:"foreignKey:SkillID;references:SkillID" json:"-"`
}

// TableName specifies the table name for GORM.
func (UserTeachSkill) TableName() string {
	return "user_teach_skills"
}

// UserLearnSkill records that a user wants to learn a skill.
// Priority is intended to range 1-5.
type UserLearnSkill struct {
	UserID          uint    `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	SkillID         uint    `gorm:"primaryKey;autoIncrement:false;index" json:"skill_id"`
	ProficiencyGoal *string `gorm:"size:50" json:"proficiency_goal"`
	Priority        *int    `json:"priority"`
	User            *User   `gorm:"foreignKey:UserID;references:UserID" json:"-"`
	Skill           *Skill  `gorm:"foreignKey:SkillID;references:SkillID" json:"-"`
}

// TableName specifies the table name for GORM.
func (UserLearnSkill) TableName() string {
	return "user_learn_skills"
}

// Learner pairs a user with their learn association for one skill.
type Learner struct {
	User            PublicUser `json:"user"`
	ProficiencyGoal *string    `json:"proficiency_goal"`
	Priority        *int       `json:"priority"`
}

// Teacher pairs a user with their teach association for one skill.
type Teacher struct {
	User            PublicUser `json:"user"`
	ExperienceLevel *string    `json:"experience_level"`
	YearsExperience *int       `json:"years_experience"`
}

// LearningSkill pairs a skill with the learn association of one user.
type LearningSkill struct {
	Skill           Skill   `json:"skill"`
	ProficiencyGoal *string `json:"proficiency_goal"`
	Priority        *int    `json:"priority"`
}

// TeachingSkill pairs a skill with the teach association of one user.
type TeachingSkill struct {
	Skill           Skill   `json:"skill"`
	ExperienceLevel *string `json:"experience_level"`
	YearsExperience *int    `json:"years_experience"`
}
