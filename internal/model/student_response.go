package model

import "time"

// StudentResponse stores the raw answer a student gave, separate from scoring.
// Free-response answers land here ungraded (IsCorrect nil) until an instructor
// grades them.
// swagger:model StudentResponse
type StudentResponse struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID     string    `gorm:"size:100;index;not null" json:"studentId"`
	WorksheetID   uint      `gorm:"index;not null" json:"worksheetId"`
	QuestionID    uint      `gorm:"index;not null" json:"questionId"`
	StudentAnswer string    `gorm:"type:text" json:"studentAnswer"`
	IsGraded      bool      `gorm:"default:false" json:"isGraded"`
	IsCorrect     *bool     `json:"isCorrect"`
	GradedBy      *string   `gorm:"size:100" json:"gradedBy"`
	GradingNotes  string    `gorm:"type:text" json:"gradingNotes"`
	Timestamp     time.Time `gorm:"index" json:"timestamp"`
}

func (StudentResponse) TableName() string {
	return "student_responses"
}
