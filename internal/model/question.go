package model

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	FreeResponse   QuestionType = "free_response"
)

// UnspecifiedDifficulty is reported for questions whose difficulty label is empty.
const UnspecifiedDifficulty = "Unspecified"

// Question represents a single question-bank entry. CorrectAnswer holds a
// letter A-D for multiple choice or the expected answer text for free response.
// swagger:model Question
type Question struct {
	BaseModel
	Text          string       `gorm:"type:text;not null" json:"text"`
	ImagePath     *string      `gorm:"size:255" json:"imagePath"`
	AnswerA       string       `gorm:"type:text" json:"answerA"`
	AnswerB       string       `gorm:"type:text" json:"answerB"`
	AnswerC       string       `gorm:"type:text" json:"answerC"`
	AnswerD       string       `gorm:"type:text" json:"answerD"`
	AnswerImageA  *string      `gorm:"size:255" json:"answerImageA"`
	AnswerImageB  *string      `gorm:"size:255" json:"answerImageB"`
	AnswerImageC  *string      `gorm:"size:255" json:"answerImageC"`
	AnswerImageD  *string      `gorm:"size:255" json:"answerImageD"`
	CorrectAnswer string       `gorm:"type:text" json:"correctAnswer"`
	Explanation   string       `gorm:"type:text" json:"explanation"`
	Type          QuestionType `gorm:"type:enum('multiple_choice','free_response');default:'multiple_choice'" json:"type"`
	Tags          []string     `gorm:"serializer:json" json:"tags"`
	Difficulty    string       `gorm:"size:50" json:"difficulty"`
}

func (Question) TableName() string {
	return "questions"
}

// DifficultyLabel returns the difficulty, defaulting empty labels.
func (q *Question) DifficultyLabel() string {
	if q.Difficulty == "" {
		return UnspecifiedDifficulty
	}
	return q.Difficulty
}

// HasValidChoiceAnswer reports whether CorrectAnswer names one of the four
// answer slots. Multiple-choice questions may be saved before the correct
// answer is chosen, so an empty or malformed value is a legal state.
func (q *Question) HasValidChoiceAnswer() bool {
	switch q.CorrectAnswer {
	case "A", "B", "C", "D":
		return true
	}
	return false
}

// QuestionFilter mirrors the filter criteria the question browser exposes.
type QuestionFilter struct {
	TextSearch  string   `json:"textSearch" form:"textSearch"`
	SubjectTags []string `json:"subjectTags" form:"subjectTags"`
	Difficulty  string   `json:"difficulty" form:"difficulty"`
	ExcludeIDs  []uint   `json:"excludeIds" form:"excludeIds"`
}
