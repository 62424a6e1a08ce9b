package model

// Worksheet is an ordered selection of questions. QuestionIDs is the
// presentation order as assembled by the instructor.
// swagger:model Worksheet
type Worksheet struct {
	BaseModel
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	QuestionIDs []uint  `gorm:"serializer:json" json:"questionIds"`
	PdfPath     *string `gorm:"size:255" json:"pdfPath"`
}

func (Worksheet) TableName() string {
	return "worksheets"
}
