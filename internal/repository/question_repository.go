package repository

import (
	"satbank_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Save(question).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}

// FindAll returns questions in id order. limit <= 0 disables pagination.
func (r *QuestionRepository) FindAll(limit, offset int) ([]model.Question, error) {
	var questions []model.Question
	query := r.DB.Order("id")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	err := query.Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) CountAll() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Count(&count).Error
	return count, err
}

// filterQuery translates the browser filter criteria into WHERE conditions.
// Tags are stored as a JSON array, so tag matching is a contains-style LIKE,
// same as the substring text search.
func (r *QuestionRepository) filterQuery(filter model.QuestionFilter) *gorm.DB {
	query := r.DB.Model(&model.Question{})

	if filter.TextSearch != "" {
		query = query.Where("text LIKE ?", "%"+filter.TextSearch+"%")
	}
	for _, tag := range filter.SubjectTags {
		if tag != "" {
			query = query.Where("tags LIKE ?", "%"+tag+"%")
		}
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}
	if len(filter.ExcludeIDs) > 0 {
		query = query.Where("id NOT IN ?", filter.ExcludeIDs)
	}

	return query
}

// Filter returns questions matching the criteria, in id order. limit <= 0
// disables pagination.
func (r *QuestionRepository) Filter(filter model.QuestionFilter, limit, offset int) ([]model.Question, error) {
	var questions []model.Question
	query := r.filterQuery(filter).Order("id")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	err := query.Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) CountFiltered(filter model.QuestionFilter) (int64, error) {
	var count int64
	err := r.filterQuery(filter).Count(&count).Error
	return count, err
}
