package service

import (
	"errors"
	"math/rand"
	"satbank_backend/internal/model"
	"satbank_backend/internal/util"
	"satbank_backend/pkg/logger"
	"satbank_backend/pkg/monitoring"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var choiceLetters = [4]string{"A", "B", "C", "D"}

// WorksheetService assembles worksheets from selected questions, randomizing
// question order and shuffling answer choices while preserving the mapping to
// the correct answer.
type WorksheetService struct {
	QuestionStore  QuestionStore
	WorksheetStore WorksheetStore
	rng            *rand.Rand
}

// NewWorksheetService builds the generator. rng may be nil, in which case a
// time-seeded source is used; tests inject a fixed seed to assert exact
// permutations.
func NewWorksheetService(questionStore QuestionStore, worksheetStore WorksheetStore, rng *rand.Rand) *WorksheetService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &WorksheetService{
		QuestionStore:  questionStore,
		WorksheetStore: worksheetStore,
		rng:            rng,
	}
}

// Generate resolves the worksheet's question ids and produces the presentation
// sequence plus an answer key. Ids missing from the store are skipped with a
// warning; resolving zero questions is an error.
func (s *WorksheetService) Generate(worksheet *model.Worksheet, randomizeQuestions, randomizeAnswers bool) (*model.GeneratedWorksheet, error) {
	questions, err := s.resolveQuestions(worksheet.QuestionIDs)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, util.ErrNoQuestions
	}

	if randomizeQuestions {
		s.rng.Shuffle(len(questions), func(i, j int) {
			questions[i], questions[j] = questions[j], questions[i]
		})
	}

	var answerKey map[string]string
	if randomizeAnswers {
		answerKey = s.shuffleAnswerChoices(questions)
	} else {
		answerKey = make(map[string]string, len(questions))
		for _, q := range questions {
			answerKey[strconv.FormatUint(uint64(q.ID), 10)] = q.CorrectAnswer
		}
	}

	monitoring.WorksheetsGenerated.Inc()
	logger.Log.Info("Generated worksheet",
		zap.Int("questions", len(questions)),
		zap.Bool("randomizeQuestions", randomizeQuestions),
		zap.Bool("randomizeAnswers", randomizeAnswers),
	)

	return &model.GeneratedWorksheet{
		Worksheet: worksheet,
		Questions: questions,
		AnswerKey: answerKey,
	}, nil
}

// GenerateFromQuestions synthesizes a throwaway worksheet around an explicit
// question selection.
func (s *WorksheetService) GenerateFromQuestions(title, description string, questions []model.Question, randomizeQuestions, randomizeAnswers bool) (*model.GeneratedWorksheet, error) {
	if len(questions) == 0 {
		return nil, util.ErrNoQuestions
	}

	ids := make([]uint, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}

	worksheet := &model.Worksheet{
		Title:       title,
		Description: description,
		QuestionIDs: ids,
	}

	return s.Generate(worksheet, randomizeQuestions, randomizeAnswers)
}

// GenerateFromFilters samples count questions uniformly without replacement
// from the filtered set.
func (s *WorksheetService) GenerateFromFilters(title, description string, filter model.QuestionFilter, count int, randomizeQuestions, randomizeAnswers bool) (*model.GeneratedWorksheet, error) {
	if count <= 0 {
		return nil, util.ErrInvalidQuestionCount
	}

	questions, err := s.QuestionStore.Filter(filter, 0, 0)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, util.ErrNoQuestionsMatching
	}

	if len(questions) > count {
		s.rng.Shuffle(len(questions), func(i, j int) {
			questions[i], questions[j] = questions[j], questions[i]
		})
		questions = questions[:count]
	}

	return s.GenerateFromQuestions(title, description, questions, randomizeQuestions, randomizeAnswers)
}

// SaveWorksheet persists the worksheet, optionally recording the rendered
// output path first.
func (s *WorksheetService) SaveWorksheet(worksheet *model.Worksheet, pdfPath string) (uint, error) {
	if pdfPath != "" {
		worksheet.PdfPath = &pdfPath
	}
	if err := s.WorksheetStore.Create(worksheet); err != nil {
		return 0, err
	}
	logger.Log.Info("Saved worksheet",
		zap.Uint("worksheetId", worksheet.ID),
		zap.Int("questions", len(worksheet.QuestionIDs)),
	)
	return worksheet.ID, nil
}

func (s *WorksheetService) resolveQuestions(ids []uint) ([]model.Question, error) {
	questions := make([]model.Question, 0, len(ids))
	for _, id := range ids {
		question, err := s.QuestionStore.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Log.Warn("Question not found, skipping", zap.Uint("questionId", id))
				continue
			}
			return nil, err
		}
		questions = append(questions, *question)
	}
	return questions, nil
}

// answerChoice carries only content. Relocating the correct choice after the
// shuffle matches by content, so duplicated choice texts resolve to the first
// value-equal slot.
type answerChoice struct {
	text      string
	imagePath *string
}

// shuffleAnswerChoices permutes each question's A-D slots in place and returns
// the answer key mapping question ids to the relabeled correct choice.
// Free-response questions and questions without a valid letter answer pass
// through untouched, their CorrectAnswer copied verbatim into the key.
func (s *WorksheetService) shuffleAnswerChoices(questions []model.Question) map[string]string {
	answerKey := make(map[string]string, len(questions))

	for i := range questions {
		q := &questions[i]
		key := strconv.FormatUint(uint64(q.ID), 10)

		if q.Type == model.FreeResponse || !q.HasValidChoiceAnswer() {
			answerKey[key] = q.CorrectAnswer
			continue
		}

		choices := []answerChoice{
			{q.AnswerA, q.AnswerImageA},
			{q.AnswerB, q.AnswerImageB},
			{q.AnswerC, q.AnswerImageC},
			{q.AnswerD, q.AnswerImageD},
		}
		correct := choices[int(q.CorrectAnswer[0]-'A')]

		s.rng.Shuffle(len(choices), func(a, b int) {
			choices[a], choices[b] = choices[b], choices[a]
		})

		q.AnswerA, q.AnswerImageA = choices[0].text, choices[0].imagePath
		q.AnswerB, q.AnswerImageB = choices[1].text, choices[1].imagePath
		q.AnswerC, q.AnswerImageC = choices[2].text, choices[2].imagePath
		q.AnswerD, q.AnswerImageD = choices[3].text, choices[3].imagePath

		// Locate the previously correct choice by value. When two choices are
		// identical the first match wins.
		for pos, choice := range choices {
			if choice == correct {
				q.CorrectAnswer = choiceLetters[pos]
				break
			}
		}

		answerKey[key] = q.CorrectAnswer
	}

	return answerKey
}

// PrepareForPreview flattens a generation result for on-screen display.
func (s *WorksheetService) PrepareForPreview(generated *model.GeneratedWorksheet) []model.PreviewQuestion {
	preview := make([]model.PreviewQuestion, 0, len(generated.Questions))

	for i, q := range generated.Questions {
		item := model.PreviewQuestion{
			Number:        i + 1,
			ID:            q.ID,
			Text:          q.Text,
			ImagePath:     q.ImagePath,
			Type:          q.Type,
			CorrectAnswer: q.CorrectAnswer,
			Answers:       []model.AnswerOption{},
		}
		if q.Type == model.MultipleChoice {
			item.Answers = answerOptions(&q)
		}
		preview = append(preview, item)
	}

	return preview
}

// PrepareForPDF persists the worksheet and flattens the generation result into
// the print-ready document handed to the rendering layer.
func (s *WorksheetService) PrepareForPDF(generated *model.GeneratedWorksheet, includeAnswerKey bool) (*model.WorksheetDocument, error) {
	if generated.Worksheet.ID == 0 {
		if _, err := s.SaveWorksheet(generated.Worksheet, ""); err != nil {
			return nil, err
		}
	}
	return s.BuildDocument(generated, includeAnswerKey), nil
}

// BuildDocument flattens a generation result into the print contract without
// touching storage.
func (s *WorksheetService) BuildDocument(generated *model.GeneratedWorksheet, includeAnswerKey bool) *model.WorksheetDocument {
	worksheet := generated.Worksheet

	doc := &model.WorksheetDocument{
		Title:            worksheet.Title,
		Description:      worksheet.Description,
		WorksheetID:      worksheet.ID,
		Questions:        make([]model.DocumentQuestion, 0, len(generated.Questions)),
		IncludeAnswerKey: includeAnswerKey,
		AnswerKey:        generated.AnswerKey,
	}

	for i, q := range generated.Questions {
		item := model.DocumentQuestion{
			Number:    i + 1,
			ID:        q.ID,
			Text:      q.Text,
			ImagePath: q.ImagePath,
			Type:      q.Type,
			Answers:   []model.AnswerOption{},
		}
		if q.Type == model.MultipleChoice {
			item.Answers = answerOptions(&q)
		} else {
			item.ResponseSpace = true
		}
		doc.Questions = append(doc.Questions, item)
	}

	return doc
}

func answerOptions(q *model.Question) []model.AnswerOption {
	return []model.AnswerOption{
		{Letter: "A", Text: q.AnswerA, ImagePath: q.AnswerImageA},
		{Letter: "B", Text: q.AnswerB, ImagePath: q.AnswerImageB},
		{Letter: "C", Text: q.AnswerC, ImagePath: q.AnswerImageC},
		{Letter: "D", Text: q.AnswerD, ImagePath: q.AnswerImageD},
	}
}
