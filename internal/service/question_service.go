package service

import (
	"errors"
	"satbank_backend/internal/model"
	"satbank_backend/internal/repository"
	"satbank_backend/internal/util"
	"satbank_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuestionService struct {
	Repo *repository.QuestionRepository
}

func NewQuestionService(repo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{Repo: repo}
}

func (s *QuestionService) Create(question *model.Question) error {
	if err := s.Repo.Create(question); err != nil {
		return err
	}
	logger.Log.Info("Created question", zap.Uint("questionId", question.ID))
	return nil
}

func (s *QuestionService) GetByID(id uint) (*model.Question, error) {
	question, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) Update(question *model.Question) error {
	if _, err := s.GetByID(question.ID); err != nil {
		return err
	}
	return s.Repo.Update(question)
}

func (s *QuestionService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	logger.Log.Info("Deleted question", zap.Uint("questionId", id))
	return nil
}

// List returns one page of questions plus the total count.
func (s *QuestionService) List(limit, offset int) ([]model.Question, int64, error) {
	questions, err := s.Repo.FindAll(limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.CountAll()
	if err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

// Filter returns one page of matching questions plus the matching total.
func (s *QuestionService) Filter(filter model.QuestionFilter, limit, offset int) ([]model.Question, int64, error) {
	questions, err := s.Repo.Filter(filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.CountFiltered(filter)
	if err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}
