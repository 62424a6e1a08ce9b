package service

import (
	"satbank_backend/internal/model"
	"satbank_backend/internal/util"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scoringFixture struct {
	svc        *ScoringService
	scores     *fakeScoreStore
	responses  *fakeResponseStore
	questions  *fakeQuestionStore
	worksheets *fakeWorksheetStore
}

func newScoringFixture(questions ...model.Question) *scoringFixture {
	f := &scoringFixture{
		scores:     newFakeScoreStore(),
		responses:  newFakeResponseStore(),
		questions:  newFakeQuestionStore(questions...),
		worksheets: newFakeWorksheetStore(),
	}
	f.svc = NewScoringService(f.scores, f.responses, f.questions, f.worksheets, nil)
	return f
}

func (f *scoringFixture) addScore(studentID string, worksheetID, questionID uint, correct bool, at time.Time) {
	f.scores.scores = append(f.scores.scores, model.Score{
		ID:          f.scores.nextID,
		StudentID:   studentID,
		WorksheetID: worksheetID,
		QuestionID:  questionID,
		Correct:     correct,
		Timestamp:   at,
	})
	f.scores.nextID++
}

func taggedQuestion(id uint, difficulty string, tags ...string) model.Question {
	return model.Question{
		BaseModel:  model.BaseModel{ID: id},
		Text:       "question text",
		Type:       model.MultipleChoice,
		Tags:       tags,
		Difficulty: difficulty,
	}
}

func TestRecordAnswerAppendsRow(t *testing.T) {
	f := newScoringFixture()

	require.NoError(t, f.svc.RecordAnswer("s1", 1, 10, true))
	require.NoError(t, f.svc.RecordAnswer("s1", 1, 10, false))

	assert.Len(t, f.scores.scores, 2)
}

func TestRetriedQuestionCountsOncePerAttempt(t *testing.T) {
	f := newScoringFixture(taggedQuestion(10, "Easy", "math"))
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f.addScore("s1", 1, 10, false, base)
	f.addScore("s1", 1, 10, true, base.Add(time.Hour))

	perf, err := f.svc.StudentPerformance("s1")
	require.NoError(t, err)
	assert.Equal(t, 2, perf.TotalQuestions)
	assert.Equal(t, 1, perf.TotalCorrect)
	assert.Equal(t, 50.0, perf.PercentageCorrect)
	assert.Equal(t, 2, perf.SubjectPerformance["math"].Total)
	assert.Equal(t, 1, perf.SubjectPerformance["math"].Correct)

	questionPerf, err := f.svc.QuestionPerformance(10)
	require.NoError(t, err)
	assert.Equal(t, 2, questionPerf.TotalAttempts)
	assert.Equal(t, 1, questionPerf.CorrectAttempts)
	assert.Equal(t, 1, questionPerf.StudentCount)

	comparative, err := f.svc.ComparativeAnalytics()
	require.NoError(t, err)
	assert.Equal(t, 2, comparative.TotalQuestionsAnswered)
	assert.InDelta(t, 50.0, comparative.AverageScore, 1e-9)

	report, err := f.svc.MasteryLevels("s1")
	require.NoError(t, err)
	assert.Equal(t, 2, report.MasteryLevels["math"].QuestionsAttempted)
	assert.Equal(t, 1, report.MasteryLevels["math"].QuestionsCorrect)
}

func TestRecordBulkAnswersNeverAbortsBatch(t *testing.T) {
	f := newScoringFixture()
	f.scores.failFor = "broken"

	result := f.svc.RecordBulkAnswers([]model.AnswerSubmission{
		{StudentID: "s1", WorksheetID: 1, QuestionID: 1, Correct: true},
		{StudentID: "broken", WorksheetID: 1, QuestionID: 2, Correct: false},
		{StudentID: "s2", WorksheetID: 1, QuestionID: 3, Correct: true},
	})

	assert.Equal(t, 3, result.TotalResponses)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.ErrorCount)
	assert.Len(t, f.scores.scores, 2)
}

func TestStudentPerformanceFansOutPerTag(t *testing.T) {
	f := newScoringFixture(
		taggedQuestion(1, "Easy", "math", "algebra"),
		taggedQuestion(2, "", "math"),
	)
	now := time.Now()
	f.addScore("s1", 1, 1, true, now)
	f.addScore("s1", 1, 2, false, now)

	perf, err := f.svc.StudentPerformance("s1")

	require.NoError(t, err)
	assert.Equal(t, 2, perf.TotalQuestions)
	assert.Equal(t, 1, perf.TotalCorrect)

	// Question 1 counts toward both math and algebra.
	assert.Equal(t, 2, perf.SubjectPerformance["math"].Total)
	assert.Equal(t, 1, perf.SubjectPerformance["math"].Correct)
	assert.Equal(t, 1, perf.SubjectPerformance["algebra"].Total)
	assert.Equal(t, 1, perf.SubjectPerformance["algebra"].Correct)

	assert.Equal(t, 1, perf.DifficultyPerformance["Easy"].Total)
	assert.Equal(t, 1, perf.DifficultyPerformance[model.UnspecifiedDifficulty].Total)
}

func TestStudentPerformanceEmptyHistory(t *testing.T) {
	f := newScoringFixture()

	perf, err := f.svc.StudentPerformance("ghost")

	require.NoError(t, err)
	assert.Equal(t, 0, perf.TotalQuestions)
	assert.Empty(t, perf.SubjectPerformance)
	assert.Empty(t, perf.RecentPerformance)
}

func TestRecentPerformanceKeepsLast30DaysAscending(t *testing.T) {
	f := newScoringFixture(taggedQuestion(1, "Easy", "math"))
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for day := 0; day < 35; day++ {
		f.addScore("s1", 1, uint(day+1), day%2 == 0, start.AddDate(0, 0, day))
	}

	perf, err := f.svc.StudentPerformance("s1")

	require.NoError(t, err)
	require.Len(t, perf.RecentPerformance, 30)
	for i := 1; i < len(perf.RecentPerformance); i++ {
		assert.Less(t, perf.RecentPerformance[i-1].Date, perf.RecentPerformance[i].Date)
	}
	// 35 active days, oldest 5 dropped.
	assert.Equal(t, "2026-01-06", perf.RecentPerformance[0].Date)
	assert.Equal(t, "2026-02-04", perf.RecentPerformance[29].Date)
}

func TestQuestionPerformancePoolsEveryAttempt(t *testing.T) {
	f := newScoringFixture()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f.addScore("s1", 1, 10, false, base)
	f.addScore("s1", 1, 10, true, base.Add(time.Minute))
	f.addScore("s2", 1, 10, false, base)
	f.addScore("s2", 2, 10, true, base)

	perf, err := f.svc.QuestionPerformance(10)

	require.NoError(t, err)
	assert.Equal(t, 4, perf.TotalAttempts)
	assert.Equal(t, 2, perf.CorrectAttempts)
	assert.Equal(t, 2, perf.StudentCount)
	assert.InDelta(t, 50.0, perf.SuccessRate, 1e-9)
}

func TestWorksheetAverageIsMeanOfMeansWhileComparativeIsPooled(t *testing.T) {
	f := newScoringFixture()
	now := time.Now()

	// Student a: 2 answers, both correct (100%). Student b: 10 answers, 1
	// correct (10%).
	for i := 0; i < 2; i++ {
		f.addScore("a", 1, uint(i+1), true, now)
	}
	for i := 0; i < 10; i++ {
		f.addScore("b", 1, uint(100+i), i < 1, now)
	}

	worksheetPerf, err := f.svc.WorksheetPerformance(1)
	require.NoError(t, err)
	// Mean of per-student percentages: (100 + 10) / 2.
	assert.InDelta(t, 55.0, worksheetPerf.AverageScore, 1e-9)
	assert.Equal(t, 2, worksheetPerf.StudentCount)
	assert.Equal(t, 12, worksheetPerf.TotalAttempts)

	comparative, err := f.svc.ComparativeAnalytics()
	require.NoError(t, err)
	// Pooled accuracy: 3 correct of 12.
	assert.InDelta(t, 25.0, comparative.AverageScore, 1e-9)
	assert.Equal(t, 2, comparative.TotalStudents)
	assert.Equal(t, 12, comparative.TotalQuestionsAnswered)
}

func TestComparativeRankingsWithTieBreakByID(t *testing.T) {
	f := newScoringFixture()
	now := time.Now()
	for q := uint(1); q <= 7; q++ {
		f.addScore("s1", 1, q, q > 3, now)
	}

	comparative, err := f.svc.ComparativeAnalytics()

	require.NoError(t, err)
	require.Len(t, comparative.DifficultQuestions, 5)
	require.Len(t, comparative.EasyQuestions, 5)

	difficultIDs := successRateIDs(comparative.DifficultQuestions)
	easyIDs := successRateIDs(comparative.EasyQuestions)

	// Ascending success rate, ties broken by question id.
	assert.Equal(t, []uint{1, 2, 3, 4, 5}, difficultIDs)
	assert.Equal(t, []uint{7, 6, 5, 4, 3}, easyIDs)
}

func TestComparativeEmptyLog(t *testing.T) {
	f := newScoringFixture()

	comparative, err := f.svc.ComparativeAnalytics()

	require.NoError(t, err)
	assert.Equal(t, 0, comparative.TotalStudents)
	assert.Empty(t, comparative.DifficultQuestions)
	assert.Empty(t, comparative.EasyQuestions)
}

func TestMasteryLevelBoundaries(t *testing.T) {
	cases := map[float64]string{
		100: model.MasteryExpert,
		90:  model.MasteryExpert,
		89:  model.MasteryProficient,
		75:  model.MasteryProficient,
		74:  model.MasteryCompetent,
		60:  model.MasteryCompetent,
		59:  model.MasteryDeveloping,
		40:  model.MasteryDeveloping,
		39:  model.MasteryNeedsImprovement,
		0:   model.MasteryNeedsImprovement,
	}
	for percentage, expected := range cases {
		assert.Equal(t, expected, masteryLevel(percentage), "percentage %v", percentage)
	}
}

func TestMasteryLevelsPerSubject(t *testing.T) {
	f := newScoringFixture(
		taggedQuestion(1, "Easy", "math"),
		taggedQuestion(2, "Easy", "math"),
		taggedQuestion(3, "Easy", "reading"),
	)
	now := time.Now()
	f.addScore("s1", 1, 1, true, now)
	f.addScore("s1", 1, 2, true, now)
	f.addScore("s1", 1, 3, false, now)

	report, err := f.svc.MasteryLevels("s1")

	require.NoError(t, err)
	math := report.MasteryLevels["math"]
	assert.Equal(t, 2, math.QuestionsAttempted)
	assert.Equal(t, 2, math.QuestionsCorrect)
	assert.Equal(t, model.MasteryExpert, math.Level)

	reading := report.MasteryLevels["reading"]
	assert.Equal(t, 1, reading.QuestionsAttempted)
	assert.Equal(t, model.MasteryNeedsImprovement, reading.Level)
}

func TestStudentWorksheetStatusSplit(t *testing.T) {
	longText := strings.Repeat("x", 150)
	q1 := taggedQuestion(1, "Easy", "math")
	q1.Text = longText
	f := newScoringFixture(q1, taggedQuestion(2, "Easy", "math"), taggedQuestion(3, "Easy", "math"))

	require.NoError(t, f.worksheets.Create(&model.Worksheet{
		Title:       "Drill",
		QuestionIDs: []uint{1, 2, 3},
	}))

	now := time.Now()
	f.addScore("s1", 1, 1, true, now)
	f.addScore("s1", 1, 2, false, now)

	status, err := f.svc.StudentWorksheetStatus("s1", 1)

	require.NoError(t, err)
	assert.Equal(t, "Drill", status.WorksheetTitle)
	assert.Equal(t, 3, status.TotalQuestions)
	assert.Equal(t, 2, status.AnsweredCount)
	assert.Equal(t, 1, status.UnansweredCount)
	assert.Equal(t, 1, status.CorrectCount)
	assert.InDelta(t, 50.0, status.PercentageCorrect, 1e-9)
	assert.InDelta(t, 100.0*2/3, status.CompletionPercentage, 1e-9)

	require.Len(t, status.AnsweredQuestions, 2)
	require.Len(t, status.UnansweredQuestions, 1)
	assert.Equal(t, strings.Repeat("x", 100)+"...", status.AnsweredQuestions[0].Text)
	require.NotNil(t, status.AnsweredQuestions[0].Correct)
	assert.True(t, *status.AnsweredQuestions[0].Correct)
	assert.Nil(t, status.UnansweredQuestions[0].Correct)
}

func TestStudentWorksheetStatusUsesLatestRowPerQuestion(t *testing.T) {
	f := newScoringFixture(taggedQuestion(1, "Easy", "math"))

	require.NoError(t, f.worksheets.Create(&model.Worksheet{
		Title:       "Retry",
		QuestionIDs: []uint{1},
	}))

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f.addScore("s1", 1, 1, false, base)
	f.addScore("s1", 1, 1, true, base.Add(time.Hour))

	status, err := f.svc.StudentWorksheetStatus("s1", 1)

	require.NoError(t, err)
	assert.Equal(t, 1, status.AnsweredCount)
	assert.Equal(t, 1, status.CorrectCount)
	assert.InDelta(t, 100.0, status.PercentageCorrect, 1e-9)
}

func TestStudentWorksheetStatusUnknownWorksheet(t *testing.T) {
	f := newScoringFixture()

	_, err := f.svc.StudentWorksheetStatus("s1", 99)

	assert.ErrorIs(t, err, util.ErrWorksheetNotFound)
}

func TestRecordResponseAutoGradesMultipleChoice(t *testing.T) {
	q := taggedQuestion(1, "Easy", "math")
	q.CorrectAnswer = "B"
	f := newScoringFixture(q)

	response, err := f.svc.RecordResponse("s1", 1, 1, "B")

	require.NoError(t, err)
	assert.True(t, response.IsGraded)
	require.NotNil(t, response.IsCorrect)
	assert.True(t, *response.IsCorrect)
	assert.Len(t, f.scores.scores, 1)
	assert.True(t, f.scores.scores[0].Correct)
}

func TestRecordResponseLeavesFreeResponseUngraded(t *testing.T) {
	q := taggedQuestion(1, "Easy", "math")
	q.Type = model.FreeResponse
	q.CorrectAnswer = "17"
	f := newScoringFixture(q)

	response, err := f.svc.RecordResponse("s1", 1, 1, "seventeen")

	require.NoError(t, err)
	assert.False(t, response.IsGraded)
	assert.Nil(t, response.IsCorrect)
	assert.Empty(t, f.scores.scores)

	ungraded, err := f.svc.ResponsesForGrading()
	require.NoError(t, err)
	assert.Len(t, ungraded, 1)
}

func TestGradeResponseFlowsIntoScoreLog(t *testing.T) {
	q := taggedQuestion(1, "Easy", "math")
	q.Type = model.FreeResponse
	f := newScoringFixture(q)

	response, err := f.svc.RecordResponse("s1", 1, 1, "17")
	require.NoError(t, err)

	graded, err := f.svc.GradeResponse(response.ID, true, "teacher@example.com", "clean work")

	require.NoError(t, err)
	assert.True(t, graded.IsGraded)
	require.NotNil(t, graded.GradedBy)
	assert.Equal(t, "teacher@example.com", *graded.GradedBy)
	require.Len(t, f.scores.scores, 1)
	assert.True(t, f.scores.scores[0].Correct)

	_, err = f.svc.GradeResponse(response.ID, false, "teacher@example.com", "")
	assert.ErrorIs(t, err, util.ErrAlreadyGraded)
}

func TestClearStudentWorksheetResponses(t *testing.T) {
	f := newScoringFixture()
	now := time.Now()
	f.addScore("s1", 1, 1, true, now)
	f.addScore("s1", 1, 2, false, now)
	f.addScore("s1", 2, 1, true, now)
	f.addScore("s2", 1, 1, true, now)

	deleted, err := f.svc.ClearStudentWorksheetResponses("s1", 1)

	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.Len(t, f.scores.scores, 2)
}

func TestAvailableWorksheetsAndAllStudents(t *testing.T) {
	f := newScoringFixture()
	require.NoError(t, f.worksheets.Create(&model.Worksheet{Title: "A", QuestionIDs: []uint{1, 2}}))
	require.NoError(t, f.worksheets.Create(&model.Worksheet{Title: "B", QuestionIDs: []uint{3}}))

	now := time.Now()
	f.addScore("zoe", 1, 1, true, now)
	f.addScore("amy", 1, 2, false, now)

	summaries, err := f.svc.AvailableWorksheets()
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, 2, summaries[0].QuestionCount)
	assert.Equal(t, 1, summaries[1].QuestionCount)

	students, err := f.svc.AllStudents()
	require.NoError(t, err)
	assert.Equal(t, []string{"amy", "zoe"}, students)
}

func TestQuestionsForWorksheetSkipsMissing(t *testing.T) {
	q := taggedQuestion(1, "Easy", "math")
	q.AnswerA, q.AnswerB, q.AnswerC, q.AnswerD = "w", "x", "y", "z"
	q.CorrectAnswer = "C"
	f := newScoringFixture(q)

	require.NoError(t, f.worksheets.Create(&model.Worksheet{QuestionIDs: []uint{1, 42}}))

	questions, err := f.svc.QuestionsForWorksheet(1)

	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "y", questions[0].Answers["C"])
	assert.Equal(t, "C", questions[0].CorrectAnswer)
}

func successRateIDs(rates []model.QuestionSuccessRate) []uint {
	ids := make([]uint, len(rates))
	for i, r := range rates {
		ids[i] = r.QuestionID
	}
	return ids
}
