package model

import "time"

// Score is one recorded attempt outcome. The log is append-only: repeated
// attempts add rows that each count toward the aggregate statistics, while
// completion views read the most recent row per question.
// swagger:model Score
type Score struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID   string    `gorm:"size:100;index;not null" json:"studentId"`
	WorksheetID uint      `gorm:"index;not null" json:"worksheetId"`
	QuestionID  uint      `gorm:"index;not null" json:"questionId"`
	Correct     bool      `gorm:"not null" json:"correct"`
	Timestamp   time.Time `gorm:"index" json:"timestamp"`
}

func (Score) TableName() string {
	return "scores"
}
