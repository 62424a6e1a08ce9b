package model

// GeneratedWorksheet is the result of one generation run. AnswerKey maps the
// question id (as string) to the current correct label for multiple choice or
// the expected text for free response. It is derived per run and never stored
// on the question.
type GeneratedWorksheet struct {
	Worksheet *Worksheet        `json:"worksheet"`
	Questions []Question        `json:"questions"`
	AnswerKey map[string]string `json:"answerKey"`
}

// AnswerOption is one lettered choice as presented to the student.
type AnswerOption struct {
	Letter    string  `json:"letter"`
	Text      string  `json:"text"`
	ImagePath *string `json:"imagePath"`
}

// PreviewQuestion 预览视图的单题数据
type PreviewQuestion struct {
	Number        int            `json:"number"`
	ID            uint           `json:"id"`
	Text          string         `json:"text"`
	ImagePath     *string        `json:"imagePath"`
	Type          QuestionType   `json:"type"`
	CorrectAnswer string         `json:"correctAnswer"`
	Answers       []AnswerOption `json:"answers"`
}

// DocumentQuestion is one question formatted for print rendering.
// ResponseSpace marks free-response questions that need writing room.
type DocumentQuestion struct {
	Number        int            `json:"number"`
	ID            uint           `json:"id"`
	Text          string         `json:"text"`
	ImagePath     *string        `json:"imagePath"`
	Type          QuestionType   `json:"type"`
	Answers       []AnswerOption `json:"answers"`
	ResponseSpace bool           `json:"responseSpace,omitempty"`
}

// WorksheetDocument is the flattened, print-ready structure handed to the
// rendering layer.
type WorksheetDocument struct {
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	WorksheetID      uint               `json:"worksheetId"`
	Questions        []DocumentQuestion `json:"questions"`
	IncludeAnswerKey bool               `json:"includeAnswerKey"`
	AnswerKey        map[string]string  `json:"answerKey"`
}
