package repository

import (
	"satbank_backend/internal/model"

	"gorm.io/gorm"
)

type WorksheetRepository struct {
	DB *gorm.DB
}

func NewWorksheetRepository(db *gorm.DB) *WorksheetRepository {
	return &WorksheetRepository{DB: db}
}

func (r *WorksheetRepository) Create(worksheet *model.Worksheet) error {
	return r.DB.Create(worksheet).Error
}

func (r *WorksheetRepository) FindByID(id uint) (*model.Worksheet, error) {
	var worksheet model.Worksheet
	err := r.DB.First(&worksheet, id).Error
	if err != nil {
		return nil, err
	}
	return &worksheet, nil
}

func (r *WorksheetRepository) Update(worksheet *model.Worksheet) error {
	return r.DB.Save(worksheet).Error
}

func (r *WorksheetRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Worksheet{}, id).Error
}

func (r *WorksheetRepository) FindAll() ([]model.Worksheet, error) {
	var worksheets []model.Worksheet
	err := r.DB.Order("id").Find(&worksheets).Error
	return worksheets, err
}
