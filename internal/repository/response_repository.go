package repository

import (
	"satbank_backend/internal/model"

	"gorm.io/gorm"
)

type ResponseRepository struct {
	DB *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{DB: db}
}

func (r *ResponseRepository) Create(response *model.StudentResponse) error {
	return r.DB.Create(response).Error
}

func (r *ResponseRepository) FindByID(id uint) (*model.StudentResponse, error) {
	var response model.StudentResponse
	err := r.DB.First(&response, id).Error
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *ResponseRepository) Update(response *model.StudentResponse) error {
	return r.DB.Save(response).Error
}

func (r *ResponseRepository) FindByStudentAndWorksheet(studentID string, worksheetID uint) ([]model.StudentResponse, error) {
	var responses []model.StudentResponse
	err := r.DB.Where("student_id = ? AND worksheet_id = ?", studentID, worksheetID).
		Order("question_id").Find(&responses).Error
	return responses, err
}

// FindUngraded lists responses awaiting manual grading, oldest first.
func (r *ResponseRepository) FindUngraded() ([]model.StudentResponse, error) {
	var responses []model.StudentResponse
	err := r.DB.Where("is_graded = ?", false).Order("timestamp").Find(&responses).Error
	return responses, err
}

func (r *ResponseRepository) DeleteByStudentAndWorksheet(studentID string, worksheetID uint) (int64, error) {
	result := r.DB.Where("student_id = ? AND worksheet_id = ?", studentID, worksheetID).
		Delete(&model.StudentResponse{})
	return result.RowsAffected, result.Error
}
