package util

import "errors"

var (
	ErrEmailRegistered      = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrWorksheetNotFound    = errors.New("worksheet not found")
	ErrResponseNotFound     = errors.New("response not found")
	ErrNoQuestions          = errors.New("no questions found for the provided IDs")
	ErrNoQuestionsMatching  = errors.New("no questions found matching the provided filters")
	ErrInvalidQuestionCount = errors.New("question count must be greater than zero")
	ErrAlreadyGraded        = errors.New("response already graded")
)
