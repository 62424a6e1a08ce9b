package service

import (
	"math/rand"
	"satbank_backend/internal/model"
	"satbank_backend/internal/util"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mcQuestion(id uint, correct string) model.Question {
	return model.Question{
		BaseModel:     model.BaseModel{ID: id},
		Text:          "question text",
		AnswerA:       "alpha",
		AnswerB:       "beta",
		AnswerC:       "gamma",
		AnswerD:       "delta",
		CorrectAnswer: correct,
		Type:          model.MultipleChoice,
	}
}

func frQuestion(id uint, answer string) model.Question {
	return model.Question{
		BaseModel:     model.BaseModel{ID: id},
		Text:          "free response text",
		CorrectAnswer: answer,
		Type:          model.FreeResponse,
	}
}

func newTestWorksheetService(seed int64, questions ...model.Question) (*WorksheetService, *fakeWorksheetStore) {
	worksheetStore := newFakeWorksheetStore()
	svc := NewWorksheetService(newFakeQuestionStore(questions...), worksheetStore, rand.New(rand.NewSource(seed)))
	return svc, worksheetStore
}

func TestGenerateSkipsUnknownQuestionIDs(t *testing.T) {
	svc, _ := newTestWorksheetService(1, mcQuestion(1, "A"), mcQuestion(3, "B"))
	worksheet := &model.Worksheet{QuestionIDs: []uint{1, 2, 3}}

	generated, err := svc.Generate(worksheet, false, false)

	require.NoError(t, err)
	require.Len(t, generated.Questions, 2)
	assert.Equal(t, uint(1), generated.Questions[0].ID)
	assert.Equal(t, uint(3), generated.Questions[1].ID)
	assert.Equal(t, map[string]string{"1": "A", "3": "B"}, generated.AnswerKey)
}

func TestGenerateAllUnknownIDs(t *testing.T) {
	svc, _ := newTestWorksheetService(1)
	worksheet := &model.Worksheet{QuestionIDs: []uint{7, 8}}

	_, err := svc.Generate(worksheet, false, false)

	assert.ErrorIs(t, err, util.ErrNoQuestions)
}

func TestGenerateFromQuestionsEmpty(t *testing.T) {
	svc, _ := newTestWorksheetService(1)

	_, err := svc.GenerateFromQuestions("t", "", nil, false, false)

	assert.ErrorIs(t, err, util.ErrNoQuestions)
}

func TestGenerateFromFiltersInvalidCount(t *testing.T) {
	svc, _ := newTestWorksheetService(1, mcQuestion(1, "A"))

	_, err := svc.GenerateFromFilters("t", "", model.QuestionFilter{}, 0, false, false)
	assert.ErrorIs(t, err, util.ErrInvalidQuestionCount)

	_, err = svc.GenerateFromFilters("t", "", model.QuestionFilter{}, -3, false, false)
	assert.ErrorIs(t, err, util.ErrInvalidQuestionCount)
}

func TestGenerateFromFiltersNoMatches(t *testing.T) {
	q := mcQuestion(1, "A")
	q.Difficulty = "Easy"
	svc, _ := newTestWorksheetService(1, q)

	_, err := svc.GenerateFromFilters("t", "", model.QuestionFilter{Difficulty: "Hard"}, 2, false, false)

	assert.ErrorIs(t, err, util.ErrNoQuestionsMatching)
}

func TestGenerateFromFiltersSamplesWithoutReplacement(t *testing.T) {
	questions := make([]model.Question, 0, 10)
	for i := uint(1); i <= 10; i++ {
		questions = append(questions, mcQuestion(i, "A"))
	}
	svc, _ := newTestWorksheetService(42, questions...)

	generated, err := svc.GenerateFromFilters("t", "", model.QuestionFilter{}, 4, false, false)

	require.NoError(t, err)
	require.Len(t, generated.Questions, 4)
	seen := make(map[uint]bool)
	for _, q := range generated.Questions {
		assert.False(t, seen[q.ID], "question %d sampled twice", q.ID)
		seen[q.ID] = true
	}
}

func TestGenerateFromFiltersCountExceedsPool(t *testing.T) {
	svc, _ := newTestWorksheetService(1, mcQuestion(1, "A"), mcQuestion(2, "B"))

	generated, err := svc.GenerateFromFilters("t", "", model.QuestionFilter{}, 10, false, false)

	require.NoError(t, err)
	assert.Len(t, generated.Questions, 2)
}

func TestQuestionShuffleIsDeterministicPerSeed(t *testing.T) {
	questions := make([]model.Question, 0, 8)
	ids := make([]uint, 0, 8)
	for i := uint(1); i <= 8; i++ {
		questions = append(questions, mcQuestion(i, "A"))
		ids = append(ids, i)
	}

	svcA, _ := newTestWorksheetService(99, questions...)
	svcB, _ := newTestWorksheetService(99, questions...)

	genA, err := svcA.Generate(&model.Worksheet{QuestionIDs: ids}, true, false)
	require.NoError(t, err)
	genB, err := svcB.Generate(&model.Worksheet{QuestionIDs: ids}, true, false)
	require.NoError(t, err)

	orderA := questionIDs(genA.Questions)
	assert.Equal(t, orderA, questionIDs(genB.Questions))
	assert.ElementsMatch(t, ids, orderA)
}

func TestAnswerShufflePreservesChoicesAndKey(t *testing.T) {
	question := mcQuestion(1, "C") // correct content is "gamma"
	svc, _ := newTestWorksheetService(7, question)

	generated, err := svc.Generate(&model.Worksheet{QuestionIDs: []uint{1}}, false, true)

	require.NoError(t, err)
	q := generated.Questions[0]
	assert.ElementsMatch(t,
		[]string{"alpha", "beta", "gamma", "delta"},
		[]string{q.AnswerA, q.AnswerB, q.AnswerC, q.AnswerD},
	)

	letter, ok := generated.AnswerKey["1"]
	require.True(t, ok)
	assert.Equal(t, "gamma", choiceText(&q, letter))
	assert.Equal(t, letter, q.CorrectAnswer)
}

func TestAnswerShuffleSkipsFreeResponse(t *testing.T) {
	svc, _ := newTestWorksheetService(7, frQuestion(1, "42"))

	generated, err := svc.Generate(&model.Worksheet{QuestionIDs: []uint{1}}, false, true)

	require.NoError(t, err)
	q := generated.Questions[0]
	assert.Empty(t, q.AnswerA)
	assert.Equal(t, "42", q.CorrectAnswer)
	assert.Equal(t, "42", generated.AnswerKey["1"])
}

func TestAnswerShuffleSkipsInvalidCorrectAnswer(t *testing.T) {
	question := mcQuestion(1, "E")
	svc, _ := newTestWorksheetService(7, question)

	generated, err := svc.Generate(&model.Worksheet{QuestionIDs: []uint{1}}, false, true)

	require.NoError(t, err)
	q := generated.Questions[0]
	assert.Equal(t, "alpha", q.AnswerA)
	assert.Equal(t, "beta", q.AnswerB)
	assert.Equal(t, "gamma", q.AnswerC)
	assert.Equal(t, "delta", q.AnswerD)
	assert.Equal(t, "E", generated.AnswerKey["1"])
}

func TestAnswerKeyRoundTripAcrossSeeds(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		svc, _ := newTestWorksheetService(seed,
			mcQuestion(1, "A"), mcQuestion(2, "B"), mcQuestion(3, "C"), mcQuestion(4, "D"))

		generated, err := svc.Generate(&model.Worksheet{QuestionIDs: []uint{1, 2, 3, 4}}, true, true)
		require.NoError(t, err)

		expected := map[string]string{"1": "alpha", "2": "beta", "3": "gamma", "4": "delta"}
		for _, q := range generated.Questions {
			letter := generated.AnswerKey[uintKey(q.ID)]
			assert.Equal(t, expected[uintKey(q.ID)], choiceText(&q, letter), "seed %d question %d", seed, q.ID)
		}
	}
}

func TestPrepareForPreview(t *testing.T) {
	svc, _ := newTestWorksheetService(1, mcQuestion(1, "A"), frQuestion(2, "x"))

	generated, err := svc.Generate(&model.Worksheet{QuestionIDs: []uint{1, 2}}, false, false)
	require.NoError(t, err)

	preview := svc.PrepareForPreview(generated)

	require.Len(t, preview, 2)
	assert.Equal(t, 1, preview[0].Number)
	assert.Equal(t, 2, preview[1].Number)
	assert.Len(t, preview[0].Answers, 4)
	assert.Empty(t, preview[1].Answers)
	assert.Equal(t, "A", preview[0].CorrectAnswer)
}

func TestPrepareForPDFPersistsWorksheet(t *testing.T) {
	svc, worksheetStore := newTestWorksheetService(1, mcQuestion(1, "A"), frQuestion(2, "x"))

	generated, err := svc.Generate(&model.Worksheet{Title: "Drill", QuestionIDs: []uint{1, 2}}, false, false)
	require.NoError(t, err)

	doc, err := svc.PrepareForPDF(generated, true)

	require.NoError(t, err)
	assert.NotZero(t, doc.WorksheetID)
	_, err = worksheetStore.FindByID(doc.WorksheetID)
	assert.NoError(t, err)

	require.Len(t, doc.Questions, 2)
	assert.False(t, doc.Questions[0].ResponseSpace)
	assert.True(t, doc.Questions[1].ResponseSpace)
	assert.True(t, doc.IncludeAnswerKey)
	assert.Equal(t, generated.AnswerKey, doc.AnswerKey)
}

func TestBuildDocumentDoesNotPersist(t *testing.T) {
	svc, worksheetStore := newTestWorksheetService(1, mcQuestion(1, "A"))

	generated, err := svc.Generate(&model.Worksheet{QuestionIDs: []uint{1}}, false, false)
	require.NoError(t, err)

	doc := svc.BuildDocument(generated, false)

	assert.Zero(t, doc.WorksheetID)
	all, _ := worksheetStore.FindAll()
	assert.Empty(t, all)
}

func TestSaveWorksheetRecordsPdfPath(t *testing.T) {
	svc, worksheetStore := newTestWorksheetService(1)

	worksheet := &model.Worksheet{Title: "Drill", QuestionIDs: []uint{1, 2}}
	id, err := svc.SaveWorksheet(worksheet, "worksheets/out.pdf")

	require.NoError(t, err)
	saved, err := worksheetStore.FindByID(id)
	require.NoError(t, err)
	require.NotNil(t, saved.PdfPath)
	assert.Equal(t, "worksheets/out.pdf", *saved.PdfPath)
}

func questionIDs(questions []model.Question) []uint {
	ids := make([]uint, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return ids
}

func uintKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func choiceText(q *model.Question, letter string) string {
	switch letter {
	case "A":
		return q.AnswerA
	case "B":
		return q.AnswerB
	case "C":
		return q.AnswerC
	case "D":
		return q.AnswerD
	}
	return ""
}
