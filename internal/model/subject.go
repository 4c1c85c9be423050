package model

import "time"

type GeneralSubject struct {
	Base
	Name string `json:"name" gorm:"not null;uniqueIndex"`
}

type Class struct {
	Base
	Number int `json:"number" gorm:"not null;uniqueIndex;check:number >= 0"`
}

// ClassSubject binds a general subject to a class and owns that pair's topics.
type ClassSubject struct {
	Base
	GeneralSubjectID uint           `json:"general_subject_id" gorm:"not null;uniqueIndex:idx_class_subject_pair"`
	GeneralSubject   GeneralSubject `json:"general_subject,omitempty" gorm:"foreignKey:GeneralSubjectID"`
	ClassID          uint           `json:"class_id" gorm:"not null;uniqueIndex:idx_class_subject_pair"`
	Class            Class          `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	Topics           []Topic        `json:"topics,omitempty" gorm:"foreignKey:ClassSubjectID"`
}

type Topic struct {
	Base
	Name           string `json:"name" gorm:"not null"`
	ClassSubjectID uint   `json:"class_subject_id" gorm:"not null;index"`
}

// SubjectClassTopic is the explicit subject x class junction carrying the
// topic. The composite key makes the triple unique; the classes a general
// subject is taught in are read through it.
type SubjectClassTopic struct {
	SubjectID uint           `json:"subject_id" gorm:"primaryKey"`
	Subject   GeneralSubject `json:"-" gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE"`
	ClassID   uint           `json:"class_id" gorm:"primaryKey;index"`
	Class     Class          `json:"-" gorm:"foreignKey:ClassID;constraint:OnDelete:CASCADE"`
	TopicID   uint           `json:"topic_id" gorm:"primaryKey"`
	Topic     Topic          `json:"-" gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time      `json:"created_at"`
}

type TrackWay struct {
	Base
	Name     string           `json:"name" gorm:"not null;uniqueIndex"`
	Subjects []GeneralSubject `json:"subjects,omitempty" gorm:"many2many:track_way_subjects"`
}
