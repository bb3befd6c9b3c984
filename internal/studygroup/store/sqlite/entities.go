package sqlite

import "time"

type studyGroupEntity struct {
	ID         int64     `gorm:"primaryKey"`
	Name       string    `gorm:"size:30;not null"`
	Subject    int       `gorm:"not null"`
	CreateDate time.Time `gorm:"not null;index"`
}

func (studyGroupEntity) TableName() string { return "study_groups" }

type userEntity struct {
	ID           int64  `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	StudyGroupID *int64 `gorm:"index"`
}

func (userEntity) TableName() string { return "users" }

// memberEntity is one row of a group's ordered member list.
type memberEntity struct {
	StudyGroupID int64 `gorm:"primaryKey;autoIncrement:false"`
	Position     int   `gorm:"primaryKey;autoIncrement:false"`
	UserID       int64 `gorm:"not null;index"`
}

func (memberEntity) TableName() string { return "study_group_members" }

// memberRow is the shape of the member hydration query.
type memberRow struct {
	StudyGroupID     int64
	UserID           int64
	Name             string
	UserStudyGroupID *int64
}
