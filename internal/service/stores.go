package service

import "satbank_backend/internal/model"

// Store interfaces consumed by the engines. The gorm repositories satisfy
// them; tests substitute in-memory fakes.

type QuestionStore interface {
	FindByID(id uint) (*model.Question, error)
	Filter(filter model.QuestionFilter, limit, offset int) ([]model.Question, error)
}

type WorksheetStore interface {
	Create(worksheet *model.Worksheet) error
	FindByID(id uint) (*model.Worksheet, error)
	FindAll() ([]model.Worksheet, error)
}

type ScoreStore interface {
	Create(score *model.Score) error
	FindByStudent(studentID string) ([]model.Score, error)
	FindByWorksheet(worksheetID uint) ([]model.Score, error)
	FindByQuestion(questionID uint) ([]model.Score, error)
	FindByStudentAndWorksheet(studentID string, worksheetID uint) ([]model.Score, error)
	FindAll() ([]model.Score, error)
	DeleteByStudentAndWorksheet(studentID string, worksheetID uint) (int64, error)
	DistinctStudents() ([]string, error)
}

type ResponseStore interface {
	Create(response *model.StudentResponse) error
	FindByID(id uint) (*model.StudentResponse, error)
	Update(response *model.StudentResponse) error
	FindByStudentAndWorksheet(studentID string, worksheetID uint) ([]model.StudentResponse, error)
	FindUngraded() ([]model.StudentResponse, error)
	DeleteByStudentAndWorksheet(studentID string, worksheetID uint) (int64, error)
}
