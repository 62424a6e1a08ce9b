package service

import (
	"context"
	"encoding/json"
	"errors"
	"satbank_backend/internal/model"
	"satbank_backend/internal/util"
	"satbank_backend/pkg/logger"
	"satbank_backend/pkg/monitoring"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	comparativeCacheKey = "analytics:comparative"
	comparativeCacheTTL = 5 * time.Minute

	rankedQuestionCount = 5
	recentDayWindow     = 30
	statusPreviewLength = 100
)

// ScoringService records answer outcomes and aggregates them into student,
// question, worksheet and cohort level analytics. The score log is append
// only and every recorded attempt counts in the aggregations; only the
// per-worksheet completion view resolves to the most recent row.
type ScoringService struct {
	ScoreStore     ScoreStore
	ResponseStore  ResponseStore
	QuestionStore  QuestionStore
	WorksheetStore WorksheetStore
	redis          *redis.Client
}

// NewScoringService builds the aggregator. redisClient may be nil; caching is
// skipped entirely in that case.
func NewScoringService(scoreStore ScoreStore, responseStore ResponseStore, questionStore QuestionStore, worksheetStore WorksheetStore, redisClient *redis.Client) *ScoringService {
	return &ScoringService{
		ScoreStore:     scoreStore,
		ResponseStore:  responseStore,
		QuestionStore:  questionStore,
		WorksheetStore: worksheetStore,
		redis:          redisClient,
	}
}

// attemptKey identifies one student's attempt at one question on one worksheet.
type attemptKey struct {
	StudentID   string
	WorksheetID uint
	QuestionID  uint
}

// RecordAnswer appends one attempt outcome. Repeated attempts add rows, each
// counted as its own attempt.
func (s *ScoringService) RecordAnswer(studentID string, worksheetID, questionID uint, correct bool) error {
	score := &model.Score{
		StudentID:   studentID,
		WorksheetID: worksheetID,
		QuestionID:  questionID,
		Correct:     correct,
		Timestamp:   time.Now(),
	}
	if err := s.ScoreStore.Create(score); err != nil {
		return err
	}
	monitoring.AnswersRecorded.Inc()
	s.invalidateComparativeCache()
	return nil
}

// RecordBulkAnswers records a batch of outcomes. A failed row is counted and
// logged but never aborts the rest of the batch.
func (s *ScoringService) RecordBulkAnswers(submissions []model.AnswerSubmission) *model.BulkRecordResult {
	result := &model.BulkRecordResult{TotalResponses: len(submissions)}

	for _, sub := range submissions {
		score := &model.Score{
			StudentID:   sub.StudentID,
			WorksheetID: sub.WorksheetID,
			QuestionID:  sub.QuestionID,
			Correct:     sub.Correct,
			Timestamp:   time.Now(),
		}
		if err := s.ScoreStore.Create(score); err != nil {
			logger.Log.Error("Failed to record answer in bulk submission",
				zap.String("studentId", sub.StudentID),
				zap.Uint("questionId", sub.QuestionID),
				zap.Error(err),
			)
			result.ErrorCount++
			continue
		}
		monitoring.AnswersRecorded.Inc()
		result.SuccessCount++
	}

	s.invalidateComparativeCache()
	return result
}

// RecordResponse stores the raw answer a student gave. Multiple-choice answers
// are graded immediately against the question's correct letter and flow into
// the score log; free-response answers wait for an instructor.
func (s *ScoringService) RecordResponse(studentID string, worksheetID, questionID uint, answer string) (*model.StudentResponse, error) {
	question, err := s.QuestionStore.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	response := &model.StudentResponse{
		StudentID:     studentID,
		WorksheetID:   worksheetID,
		QuestionID:    questionID,
		StudentAnswer: answer,
		Timestamp:     time.Now(),
	}

	if question.Type == model.MultipleChoice && question.HasValidChoiceAnswer() {
		correct := answer == question.CorrectAnswer
		response.IsGraded = true
		response.IsCorrect = &correct
	}

	if err := s.ResponseStore.Create(response); err != nil {
		return nil, err
	}

	if response.IsGraded {
		if err := s.RecordAnswer(studentID, worksheetID, questionID, *response.IsCorrect); err != nil {
			return nil, err
		}
	}

	return response, nil
}

// GradeResponse marks an ungraded response and records the outcome in the
// score log so graded free-response work participates in analytics.
func (s *ScoringService) GradeResponse(responseID uint, correct bool, gradedBy, notes string) (*model.StudentResponse, error) {
	response, err := s.ResponseStore.FindByID(responseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrResponseNotFound
		}
		return nil, err
	}
	if response.IsGraded {
		return nil, util.ErrAlreadyGraded
	}

	response.IsGraded = true
	response.IsCorrect = &correct
	response.GradedBy = &gradedBy
	response.GradingNotes = notes

	if err := s.ResponseStore.Update(response); err != nil {
		return nil, err
	}

	if err := s.RecordAnswer(response.StudentID, response.WorksheetID, response.QuestionID, correct); err != nil {
		return nil, err
	}

	return response, nil
}

// ResponsesForGrading lists every response still waiting on an instructor.
func (s *ScoringService) ResponsesForGrading() ([]model.StudentResponse, error) {
	return s.ResponseStore.FindUngraded()
}

// StudentPerformance aggregates every attempt a student recorded across all
// worksheets, fanned out per subject tag and per difficulty, with a daily
// history of the last 30 active days. Retried questions count once per
// attempt.
func (s *ScoringService) StudentPerformance(studentID string) (*model.StudentPerformance, error) {
	scores, err := s.ScoreStore.FindByStudent(studentID)
	if err != nil {
		return nil, err
	}

	perf := &model.StudentPerformance{
		StudentID:             studentID,
		SubjectPerformance:    map[string]model.GroupPerformance{},
		DifficultyPerformance: map[string]model.GroupPerformance{},
		RecentPerformance:     []model.DailyPerformance{},
	}
	if len(scores) == 0 {
		return perf, nil
	}

	worksheets := make(map[uint]struct{})

	for _, score := range scores {
		perf.TotalQuestions++
		if score.Correct {
			perf.TotalCorrect++
		}
		worksheets[score.WorksheetID] = struct{}{}

		question, err := s.QuestionStore.FindByID(score.QuestionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}

		// One observation per tag: a multi-tag question counts toward every
		// subject it carries.
		for _, tag := range question.Tags {
			addObservation(perf.SubjectPerformance, tag, score.Correct)
		}
		addObservation(perf.DifficultyPerformance, question.DifficultyLabel(), score.Correct)
	}

	if perf.TotalQuestions > 0 {
		perf.PercentageCorrect = float64(perf.TotalCorrect) / float64(perf.TotalQuestions) * 100
	}
	perf.WorksheetsCompleted = len(worksheets)
	perf.RecentPerformance = dailyBuckets(scores)

	return perf, nil
}

// QuestionPerformance pools every attempt at one question across all students
// and worksheets.
func (s *ScoringService) QuestionPerformance(questionID uint) (*model.QuestionPerformance, error) {
	scores, err := s.ScoreStore.FindByQuestion(questionID)
	if err != nil {
		return nil, err
	}

	perf := &model.QuestionPerformance{QuestionID: questionID}
	if len(scores) == 0 {
		return perf, nil
	}

	students := make(map[string]struct{})

	for _, score := range scores {
		perf.TotalAttempts++
		if score.Correct {
			perf.CorrectAttempts++
		}
		students[score.StudentID] = struct{}{}
	}

	perf.SuccessRate = float64(perf.CorrectAttempts) / float64(perf.TotalAttempts) * 100
	perf.StudentCount = len(students)

	return perf, nil
}

// WorksheetPerformance averages the per-student percentages on one worksheet.
// Each student weighs equally regardless of how many attempts they recorded,
// so this is a mean of means, not pooled accuracy.
func (s *ScoringService) WorksheetPerformance(worksheetID uint) (*model.WorksheetPerformance, error) {
	scores, err := s.ScoreStore.FindByWorksheet(worksheetID)
	if err != nil {
		return nil, err
	}

	perf := &model.WorksheetPerformance{
		WorksheetID:         worksheetID,
		StudentPerformances: []model.StudentWorksheetResult{},
	}
	if len(scores) == 0 {
		return perf, nil
	}

	byStudent := make(map[string]*model.StudentWorksheetResult)

	for _, score := range scores {
		result, ok := byStudent[score.StudentID]
		if !ok {
			result = &model.StudentWorksheetResult{StudentID: score.StudentID}
			byStudent[score.StudentID] = result
		}
		result.TotalQuestions++
		if score.Correct {
			result.CorrectAnswers++
		}
		perf.TotalAttempts++
	}

	var percentageSum float64
	for _, result := range byStudent {
		result.Percentage = float64(result.CorrectAnswers) / float64(result.TotalQuestions) * 100
		percentageSum += result.Percentage
		perf.StudentPerformances = append(perf.StudentPerformances, *result)
	}

	sort.Slice(perf.StudentPerformances, func(i, j int) bool {
		return perf.StudentPerformances[i].StudentID < perf.StudentPerformances[j].StudentID
	})

	perf.StudentCount = len(byStudent)
	perf.AverageScore = percentageSum / float64(len(byStudent))

	return perf, nil
}

// ComparativeAnalytics aggregates the whole cohort: pooled accuracy across
// every recorded attempt plus the five lowest and five highest success-rate
// questions. The two rankings may overlap when fewer than ten questions have
// data. Results are served from redis for a short window when available.
func (s *ScoringService) ComparativeAnalytics() (*model.ComparativeAnalytics, error) {
	if cached := s.cachedComparative(); cached != nil {
		return cached, nil
	}

	scores, err := s.ScoreStore.FindAll()
	if err != nil {
		return nil, err
	}

	analytics := &model.ComparativeAnalytics{
		DifficultQuestions: []model.QuestionSuccessRate{},
		EasyQuestions:      []model.QuestionSuccessRate{},
	}
	if len(scores) == 0 {
		return analytics, nil
	}

	students := make(map[string]struct{})
	questionTotals := make(map[uint]*model.GroupPerformance)

	var pooledCorrect int
	for _, score := range scores {
		students[score.StudentID] = struct{}{}
		analytics.TotalQuestionsAnswered++
		if score.Correct {
			pooledCorrect++
		}

		bucket, ok := questionTotals[score.QuestionID]
		if !ok {
			bucket = &model.GroupPerformance{}
			questionTotals[score.QuestionID] = bucket
		}
		bucket.Total++
		if score.Correct {
			bucket.Correct++
		}
	}

	analytics.TotalStudents = len(students)
	analytics.AverageScore = float64(pooledCorrect) / float64(analytics.TotalQuestionsAnswered) * 100

	rates := make([]model.QuestionSuccessRate, 0, len(questionTotals))
	for id, bucket := range questionTotals {
		rates = append(rates, model.QuestionSuccessRate{
			QuestionID:  id,
			SuccessRate: float64(bucket.Correct) / float64(bucket.Total) * 100,
		})
	}

	sort.Slice(rates, func(i, j int) bool {
		if rates[i].SuccessRate != rates[j].SuccessRate {
			return rates[i].SuccessRate < rates[j].SuccessRate
		}
		return rates[i].QuestionID < rates[j].QuestionID
	})

	n := rankedQuestionCount
	if n > len(rates) {
		n = len(rates)
	}
	analytics.DifficultQuestions = append(analytics.DifficultQuestions, rates[:n]...)
	for i := 0; i < n; i++ {
		analytics.EasyQuestions = append(analytics.EasyQuestions, rates[len(rates)-1-i])
	}

	s.cacheComparative(analytics)
	return analytics, nil
}

// MasteryLevels classifies one student's per-subject accuracy against fixed
// thresholds.
func (s *ScoringService) MasteryLevels(studentID string) (*model.MasteryReport, error) {
	scores, err := s.ScoreStore.FindByStudent(studentID)
	if err != nil {
		return nil, err
	}

	report := &model.MasteryReport{
		StudentID:     studentID,
		MasteryLevels: map[string]model.SubjectMastery{},
	}
	if len(scores) == 0 {
		return report, nil
	}

	subjects := make(map[string]*model.SubjectMastery)
	for _, score := range scores {
		question, err := s.QuestionStore.FindByID(score.QuestionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		for _, tag := range question.Tags {
			mastery, ok := subjects[tag]
			if !ok {
				mastery = &model.SubjectMastery{}
				subjects[tag] = mastery
			}
			mastery.QuestionsAttempted++
			if score.Correct {
				mastery.QuestionsCorrect++
			}
		}
	}

	for tag, mastery := range subjects {
		mastery.Percentage = float64(mastery.QuestionsCorrect) / float64(mastery.QuestionsAttempted) * 100
		mastery.Level = masteryLevel(mastery.Percentage)
		report.MasteryLevels[tag] = *mastery
	}

	return report, nil
}

// StudentWorksheetStatus splits a worksheet into answered and unanswered
// questions for one student, with a short text preview per question.
func (s *ScoringService) StudentWorksheetStatus(studentID string, worksheetID uint) (*model.WorksheetStatus, error) {
	worksheet, err := s.WorksheetStore.FindByID(worksheetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrWorksheetNotFound
		}
		return nil, err
	}

	scores, err := s.ScoreStore.FindByStudentAndWorksheet(studentID, worksheetID)
	if err != nil {
		return nil, err
	}
	latest := latestScores(scores)

	status := &model.WorksheetStatus{
		StudentID:           studentID,
		WorksheetID:         worksheetID,
		WorksheetTitle:      worksheet.Title,
		AnsweredQuestions:   []model.QuestionStatus{},
		UnansweredQuestions: []model.QuestionStatus{},
	}

	for _, questionID := range worksheet.QuestionIDs {
		question, err := s.QuestionStore.FindByID(questionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		status.TotalQuestions++

		entry := model.QuestionStatus{
			ID:   question.ID,
			Text: util.TruncateText(question.Text, statusPreviewLength),
		}

		key := attemptKey{StudentID: studentID, WorksheetID: worksheetID, QuestionID: questionID}
		if score, ok := latest[key]; ok {
			correct := score.Correct
			entry.Answered = true
			entry.Correct = &correct
			status.AnsweredCount++
			if correct {
				status.CorrectCount++
			}
			status.AnsweredQuestions = append(status.AnsweredQuestions, entry)
		} else {
			status.UnansweredCount++
			status.UnansweredQuestions = append(status.UnansweredQuestions, entry)
		}
	}

	if status.AnsweredCount > 0 {
		status.PercentageCorrect = float64(status.CorrectCount) / float64(status.AnsweredCount) * 100
	}
	if status.TotalQuestions > 0 {
		status.CompletionPercentage = float64(status.AnsweredCount) / float64(status.TotalQuestions) * 100
	}

	return status, nil
}

// AvailableWorksheets lists every worksheet as a summary row.
func (s *ScoringService) AvailableWorksheets() ([]model.WorksheetSummary, error) {
	worksheets, err := s.WorksheetStore.FindAll()
	if err != nil {
		return nil, err
	}

	summaries := make([]model.WorksheetSummary, 0, len(worksheets))
	for _, w := range worksheets {
		summaries = append(summaries, model.WorksheetSummary{
			ID:            w.ID,
			Title:         w.Title,
			Description:   w.Description,
			QuestionCount: len(w.QuestionIDs),
		})
	}
	return summaries, nil
}

// QuestionsForWorksheet resolves a worksheet's questions into the answer-entry
// view. Questions removed from the bank since generation are skipped.
func (s *ScoringService) QuestionsForWorksheet(worksheetID uint) ([]model.WorksheetQuestion, error) {
	worksheet, err := s.WorksheetStore.FindByID(worksheetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrWorksheetNotFound
		}
		return nil, err
	}

	questions := make([]model.WorksheetQuestion, 0, len(worksheet.QuestionIDs))
	for _, questionID := range worksheet.QuestionIDs {
		question, err := s.QuestionStore.FindByID(questionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Log.Warn("Worksheet references missing question",
					zap.Uint("worksheetId", worksheetID),
					zap.Uint("questionId", questionID),
				)
				continue
			}
			return nil, err
		}

		questions = append(questions, model.WorksheetQuestion{
			ID:    question.ID,
			Text:  question.Text,
			Image: question.ImagePath,
			Type:  question.Type,
			Answers: map[string]string{
				"A": question.AnswerA,
				"B": question.AnswerB,
				"C": question.AnswerC,
				"D": question.AnswerD,
			},
			AnswerImages: map[string]*string{
				"A": question.AnswerImageA,
				"B": question.AnswerImageB,
				"C": question.AnswerImageC,
				"D": question.AnswerImageD,
			},
			CorrectAnswer: question.CorrectAnswer,
		})
	}

	return questions, nil
}

// ClearStudentWorksheetResponses removes one student's scores and raw
// responses for a worksheet, returning how many score rows were deleted.
func (s *ScoringService) ClearStudentWorksheetResponses(studentID string, worksheetID uint) (int64, error) {
	deleted, err := s.ScoreStore.DeleteByStudentAndWorksheet(studentID, worksheetID)
	if err != nil {
		return 0, err
	}
	if _, err := s.ResponseStore.DeleteByStudentAndWorksheet(studentID, worksheetID); err != nil {
		return deleted, err
	}

	logger.Log.Info("Cleared student worksheet responses",
		zap.String("studentId", studentID),
		zap.Uint("worksheetId", worksheetID),
		zap.Int64("deleted", deleted),
	)

	s.invalidateComparativeCache()
	return deleted, nil
}

// AllStudents lists every student id present in the score log.
func (s *ScoringService) AllStudents() ([]string, error) {
	return s.ScoreStore.DistinctStudents()
}

// latestScores collapses the append-only log to the newest row per attempt
// key. Only the per-worksheet completion view uses it; the aggregate
// statistics count every row.
func latestScores(scores []model.Score) map[attemptKey]model.Score {
	latest := make(map[attemptKey]model.Score)
	for _, score := range scores {
		key := attemptKey{
			StudentID:   score.StudentID,
			WorksheetID: score.WorksheetID,
			QuestionID:  score.QuestionID,
		}
		if current, ok := latest[key]; !ok || score.Timestamp.After(current.Timestamp) {
			latest[key] = score
		}
	}
	return latest
}

// dailyBuckets groups the full attempt history by calendar day, sorted
// ascending, keeping the most recent 30 active days.
func dailyBuckets(scores []model.Score) []model.DailyPerformance {
	byDay := make(map[string]*model.DailyPerformance)
	for _, score := range scores {
		day := score.Timestamp.Format(util.DateFormat)
		bucket, ok := byDay[day]
		if !ok {
			bucket = &model.DailyPerformance{Date: day}
			byDay[day] = bucket
		}
		bucket.Total++
		if score.Correct {
			bucket.Correct++
		}
	}

	days := make([]model.DailyPerformance, 0, len(byDay))
	for _, bucket := range byDay {
		bucket.Percentage = float64(bucket.Correct) / float64(bucket.Total) * 100
		days = append(days, *bucket)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	if len(days) > recentDayWindow {
		days = days[len(days)-recentDayWindow:]
	}
	return days
}

func addObservation(groups map[string]model.GroupPerformance, key string, correct bool) {
	group := groups[key]
	group.Total++
	if correct {
		group.Correct++
	}
	group.Percentage = float64(group.Correct) / float64(group.Total) * 100
	groups[key] = group
}

func masteryLevel(percentage float64) string {
	switch {
	case percentage >= 90:
		return model.MasteryExpert
	case percentage >= 75:
		return model.MasteryProficient
	case percentage >= 60:
		return model.MasteryCompetent
	case percentage >= 40:
		return model.MasteryDeveloping
	default:
		return model.MasteryNeedsImprovement
	}
}

func (s *ScoringService) cachedComparative() *model.ComparativeAnalytics {
	if s.redis == nil {
		return nil
	}
	payload, err := s.redis.Get(context.Background(), comparativeCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var analytics model.ComparativeAnalytics
	if err := json.Unmarshal(payload, &analytics); err != nil {
		return nil
	}
	return &analytics
}

func (s *ScoringService) cacheComparative(analytics *model.ComparativeAnalytics) {
	if s.redis == nil {
		return
	}
	payload, err := json.Marshal(analytics)
	if err != nil {
		return
	}
	if err := s.redis.Set(context.Background(), comparativeCacheKey, payload, comparativeCacheTTL).Err(); err != nil {
		logger.Log.Warn("Failed to cache comparative analytics", zap.Error(err))
	}
}

func (s *ScoringService) invalidateComparativeCache() {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(context.Background(), comparativeCacheKey).Err(); err != nil {
		logger.Log.Warn("Failed to invalidate comparative analytics cache", zap.Error(err))
	}
}
