package model

// GroupPerformance is one correct/total bucket within a grouped aggregation.
type GroupPerformance struct {
	Correct    int     `json:"correct"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// DailyPerformance is one calendar day of a student's attempt history.
type DailyPerformance struct {
	Date       string  `json:"date"` // YYYY-MM-DD
	Correct    int     `json:"correct"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// StudentPerformance 学生整体表现
type StudentPerformance struct {
	StudentID             string                      `json:"studentId"`
	TotalQuestions        int                         `json:"totalQuestions"`
	TotalCorrect          int                         `json:"totalCorrect"`
	PercentageCorrect     float64                     `json:"percentageCorrect"`
	WorksheetsCompleted   int                         `json:"worksheetsCompleted"`
	SubjectPerformance    map[string]GroupPerformance `json:"subjectPerformance"`
	DifficultyPerformance map[string]GroupPerformance `json:"difficultyPerformance"`
	RecentPerformance     []DailyPerformance          `json:"recentPerformance"`
}

// QuestionPerformance pools every student's attempts at one question.
type QuestionPerformance struct {
	QuestionID      uint    `json:"questionId"`
	TotalAttempts   int     `json:"totalAttempts"`
	CorrectAttempts int     `json:"correctAttempts"`
	SuccessRate     float64 `json:"successRate"`
	StudentCount    int     `json:"studentCount"`
}

// StudentWorksheetResult is one student's personal percentage on a worksheet.
type StudentWorksheetResult struct {
	StudentID      string  `json:"studentId"`
	TotalQuestions int     `json:"totalQuestions"`
	CorrectAnswers int     `json:"correctAnswers"`
	Percentage     float64 `json:"percentage"`
}

// WorksheetPerformance averages the per-student percentages (mean of means),
// which weighs each student equally regardless of how many questions they
// answered.
type WorksheetPerformance struct {
	WorksheetID         uint                     `json:"worksheetId"`
	TotalAttempts       int                      `json:"totalAttempts"`
	AverageScore        float64                  `json:"averageScore"`
	StudentCount        int                      `json:"studentCount"`
	StudentPerformances []StudentWorksheetResult `json:"studentPerformances"`
}

// QuestionSuccessRate ranks one question by pooled success rate.
type QuestionSuccessRate struct {
	QuestionID  uint    `json:"questionId"`
	SuccessRate float64 `json:"successRate"`
}

// ComparativeAnalytics covers the whole cohort. AverageScore here is pooled
// accuracy across all score rows, unlike the worksheet-level mean of means.
type ComparativeAnalytics struct {
	TotalStudents          int                   `json:"totalStudents"`
	TotalQuestionsAnswered int                   `json:"totalQuestionsAnswered"`
	AverageScore           float64               `json:"averageScore"`
	DifficultQuestions     []QuestionSuccessRate `json:"difficultQuestions"`
	EasyQuestions          []QuestionSuccessRate `json:"easyQuestions"`
}

// Mastery level labels, from fixed percentage thresholds.
const (
	MasteryExpert           = "Expert"
	MasteryProficient       = "Proficient"
	MasteryCompetent        = "Competent"
	MasteryDeveloping       = "Developing"
	MasteryNeedsImprovement = "Needs Improvement"
)

// SubjectMastery 单科掌握程度
type SubjectMastery struct {
	Percentage         float64 `json:"percentage"`
	Level              string  `json:"level"`
	QuestionsAttempted int     `json:"questionsAttempted"`
	QuestionsCorrect   int     `json:"questionsCorrect"`
}

// MasteryReport classifies a student's per-subject accuracy.
type MasteryReport struct {
	StudentID     string                    `json:"studentId"`
	MasteryLevels map[string]SubjectMastery `json:"masteryLevels"`
}

// BulkRecordResult counts outcomes of a batch answer submission. A failed row
// never aborts the rest of the batch.
type BulkRecordResult struct {
	SuccessCount   int `json:"successCount"`
	ErrorCount     int `json:"errorCount"`
	TotalResponses int `json:"totalResponses"`
}

// QuestionStatus is one row of a worksheet completion report. Text is
// truncated to a short preview.
type QuestionStatus struct {
	ID       uint   `json:"id"`
	Text     string `json:"text"`
	Answered bool   `json:"answered"`
	Correct  *bool  `json:"correct,omitempty"`
}

// WorksheetStatus splits a worksheet into answered and unanswered questions
// for one student.
type WorksheetStatus struct {
	StudentID            string           `json:"studentId"`
	WorksheetID          uint             `json:"worksheetId"`
	WorksheetTitle       string           `json:"worksheetTitle"`
	TotalQuestions       int              `json:"totalQuestions"`
	AnsweredCount        int              `json:"answeredCount"`
	UnansweredCount      int              `json:"unansweredCount"`
	CorrectCount         int              `json:"correctCount"`
	PercentageCorrect    float64          `json:"percentageCorrect"`
	CompletionPercentage float64          `json:"completionPercentage"`
	AnsweredQuestions    []QuestionStatus `json:"answeredQuestions"`
	UnansweredQuestions  []QuestionStatus `json:"unansweredQuestions"`
}

// WorksheetSummary 练习卷概要
type WorksheetSummary struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	QuestionCount int    `json:"questionCount"`
}

// WorksheetQuestion is the answer-entry view of a question: full choice texts
// and images keyed by letter, plus the current correct answer for grading.
type WorksheetQuestion struct {
	ID            uint               `json:"id"`
	Text          string             `json:"text"`
	Image         *string            `json:"image"`
	Type          QuestionType       `json:"type"`
	Answers       map[string]string  `json:"answers"`
	AnswerImages  map[string]*string `json:"answerImages"`
	CorrectAnswer string             `json:"correctAnswer"`
}
