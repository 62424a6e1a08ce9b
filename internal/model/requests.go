package model

// RegisterRequest 用户注册请求
type RegisterRequest struct {
	Name     string   `json:"name" binding:"required"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=6"`
	Role     UserRole `json:"role"`
}

// LoginRequest 用户登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token plus the public user fields.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// AnswerSubmission is one recorded outcome in a single or bulk submission.
type AnswerSubmission struct {
	StudentID   string `json:"studentId" binding:"required"`
	WorksheetID uint   `json:"worksheetId" binding:"required"`
	QuestionID  uint   `json:"questionId" binding:"required"`
	Correct     bool   `json:"correct"`
}

// BulkAnswerRequest 批量记录作答请求
type BulkAnswerRequest struct {
	Responses []AnswerSubmission `json:"responses" binding:"required"`
}

// ResponseSubmission records the raw answer text a student gave.
type ResponseSubmission struct {
	StudentID   string `json:"studentId" binding:"required"`
	WorksheetID uint   `json:"worksheetId" binding:"required"`
	QuestionID  uint   `json:"questionId" binding:"required"`
	Answer      string `json:"answer"`
}

// GradeRequest is an instructor's verdict on a free-response answer.
type GradeRequest struct {
	Correct bool   `json:"correct"`
	Notes   string `json:"notes"`
}

// GenerateWorksheetRequest builds a worksheet from an explicit id selection.
type GenerateWorksheetRequest struct {
	Title              string `json:"title" binding:"required"`
	Description        string `json:"description"`
	QuestionIDs        []uint `json:"questionIds" binding:"required"`
	RandomizeQuestions bool   `json:"randomizeQuestions"`
	RandomizeAnswers   bool   `json:"randomizeAnswers"`
	IncludeAnswerKey   bool   `json:"includeAnswerKey"`
	Save               bool   `json:"save"`
}

// GenerateFromFiltersRequest samples questions matching filter criteria.
type GenerateFromFiltersRequest struct {
	Title              string         `json:"title" binding:"required"`
	Description        string         `json:"description"`
	Filter             QuestionFilter `json:"filter"`
	Count              int            `json:"count" binding:"required"`
	RandomizeQuestions bool           `json:"randomizeQuestions"`
	RandomizeAnswers   bool           `json:"randomizeAnswers"`
	IncludeAnswerKey   bool           `json:"includeAnswerKey"`
	Save               bool           `json:"save"`
}
