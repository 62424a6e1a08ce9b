package repository

import (
	"satbank_backend/internal/model"

	"gorm.io/gorm"
)

// ScoreRepository is the single seam over the append-only score log. The
// full-table and per-question scans live here as first-class methods so the
// aggregation layer never issues raw queries.
type ScoreRepository struct {
	DB *gorm.DB
}

func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{DB: db}
}

func (r *ScoreRepository) Create(score *model.Score) error {
	return r.DB.Create(score).Error
}

func (r *ScoreRepository) FindByStudent(studentID string) ([]model.Score, error) {
	var scores []model.Score
	err := r.DB.Where("student_id = ?", studentID).Order("timestamp DESC").Find(&scores).Error
	return scores, err
}

func (r *ScoreRepository) FindByWorksheet(worksheetID uint) ([]model.Score, error) {
	var scores []model.Score
	err := r.DB.Where("worksheet_id = ?", worksheetID).Order("student_id, question_id").Find(&scores).Error
	return scores, err
}

func (r *ScoreRepository) FindByQuestion(questionID uint) ([]model.Score, error) {
	var scores []model.Score
	err := r.DB.Where("question_id = ?", questionID).Find(&scores).Error
	return scores, err
}

func (r *ScoreRepository) FindByStudentAndWorksheet(studentID string, worksheetID uint) ([]model.Score, error) {
	var scores []model.Score
	err := r.DB.Where("student_id = ? AND worksheet_id = ?", studentID, worksheetID).
		Order("question_id").Find(&scores).Error
	return scores, err
}

func (r *ScoreRepository) FindAll() ([]model.Score, error) {
	var scores []model.Score
	err := r.DB.Order("timestamp").Find(&scores).Error
	return scores, err
}

// DeleteByStudentAndWorksheet removes every attempt a student recorded on a
// worksheet and returns how many rows were removed.
func (r *ScoreRepository) DeleteByStudentAndWorksheet(studentID string, worksheetID uint) (int64, error) {
	result := r.DB.Where("student_id = ? AND worksheet_id = ?", studentID, worksheetID).
		Delete(&model.Score{})
	return result.RowsAffected, result.Error
}

func (r *ScoreRepository) DistinctStudents() ([]string, error) {
	var studentIDs []string
	err := r.DB.Model(&model.Score{}).Distinct("student_id").
		Order("student_id").Pluck("student_id", &studentIDs).Error
	return studentIDs, err
}
