package service

import (
	"errors"
	"satbank_backend/internal/model"
	"sort"
	"strings"

	"gorm.io/gorm"
)

type fakeQuestionStore struct {
	questions map[uint]model.Question
}

func newFakeQuestionStore(questions ...model.Question) *fakeQuestionStore {
	store := &fakeQuestionStore{questions: make(map[uint]model.Question)}
	for _, q := range questions {
		store.questions[q.ID] = q
	}
	return store
}

func (s *fakeQuestionStore) FindByID(id uint) (*model.Question, error) {
	q, ok := s.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &q, nil
}

func (s *fakeQuestionStore) FindAll(limit, offset int) ([]model.Question, error) {
	all := s.sorted()
	if limit <= 0 {
		return all, nil
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *fakeQuestionStore) Filter(filter model.QuestionFilter, limit, offset int) ([]model.Question, error) {
	var matched []model.Question
	for _, q := range s.sorted() {
		if matchesFilter(q, filter) {
			matched = append(matched, q)
		}
	}
	if limit <= 0 {
		return matched, nil
	}
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (s *fakeQuestionStore) CountAll() (int64, error) {
	return int64(len(s.questions)), nil
}

func (s *fakeQuestionStore) CountFiltered(filter model.QuestionFilter) (int64, error) {
	matched, _ := s.Filter(filter, 0, 0)
	return int64(len(matched)), nil
}

func (s *fakeQuestionStore) sorted() []model.Question {
	all := make([]model.Question, 0, len(s.questions))
	for _, q := range s.questions {
		all = append(all, q)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

func matchesFilter(q model.Question, filter model.QuestionFilter) bool {
	if filter.TextSearch != "" && !strings.Contains(q.Text, filter.TextSearch) {
		return false
	}
	for _, tag := range filter.SubjectTags {
		if tag == "" {
			continue
		}
		found := false
		for _, t := range q.Tags {
			if strings.Contains(t, tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.Difficulty != "" && q.Difficulty != filter.Difficulty {
		return false
	}
	for _, id := range filter.ExcludeIDs {
		if q.ID == id {
			return false
		}
	}
	return true
}

type fakeWorksheetStore struct {
	worksheets map[uint]*model.Worksheet
	nextID     uint
}

func newFakeWorksheetStore() *fakeWorksheetStore {
	return &fakeWorksheetStore{worksheets: make(map[uint]*model.Worksheet), nextID: 1}
}

func (s *fakeWorksheetStore) Create(worksheet *model.Worksheet) error {
	if worksheet.ID == 0 {
		worksheet.ID = s.nextID
		s.nextID++
	}
	stored := *worksheet
	s.worksheets[worksheet.ID] = &stored
	return nil
}

func (s *fakeWorksheetStore) FindByID(id uint) (*model.Worksheet, error) {
	w, ok := s.worksheets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *w
	return &copied, nil
}

func (s *fakeWorksheetStore) Update(worksheet *model.Worksheet) error {
	if _, ok := s.worksheets[worksheet.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *worksheet
	s.worksheets[worksheet.ID] = &stored
	return nil
}

func (s *fakeWorksheetStore) FindAll() ([]model.Worksheet, error) {
	all := make([]model.Worksheet, 0, len(s.worksheets))
	for _, w := range s.worksheets {
		all = append(all, *w)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

type fakeScoreStore struct {
	scores []model.Score
	nextID uint

	// failFor simulates a storage error when creating rows for this student.
	failFor string
}

func newFakeScoreStore() *fakeScoreStore {
	return &fakeScoreStore{nextID: 1}
}

func (s *fakeScoreStore) Create(score *model.Score) error {
	if s.failFor != "" && score.StudentID == s.failFor {
		return errors.New("storage failure")
	}
	score.ID = s.nextID
	s.nextID++
	s.scores = append(s.scores, *score)
	return nil
}

func (s *fakeScoreStore) filter(keep func(model.Score) bool) []model.Score {
	var out []model.Score
	for _, score := range s.scores {
		if keep(score) {
			out = append(out, score)
		}
	}
	return out
}

func (s *fakeScoreStore) FindByStudent(studentID string) ([]model.Score, error) {
	return s.filter(func(sc model.Score) bool { return sc.StudentID == studentID }), nil
}

func (s *fakeScoreStore) FindByWorksheet(worksheetID uint) ([]model.Score, error) {
	return s.filter(func(sc model.Score) bool { return sc.WorksheetID == worksheetID }), nil
}

func (s *fakeScoreStore) FindByQuestion(questionID uint) ([]model.Score, error) {
	return s.filter(func(sc model.Score) bool { return sc.QuestionID == questionID }), nil
}

func (s *fakeScoreStore) FindByStudentAndWorksheet(studentID string, worksheetID uint) ([]model.Score, error) {
	return s.filter(func(sc model.Score) bool {
		return sc.StudentID == studentID && sc.WorksheetID == worksheetID
	}), nil
}

func (s *fakeScoreStore) FindAll() ([]model.Score, error) {
	return append([]model.Score(nil), s.scores...), nil
}

func (s *fakeScoreStore) DeleteByStudentAndWorksheet(studentID string, worksheetID uint) (int64, error) {
	kept := s.filter(func(sc model.Score) bool {
		return !(sc.StudentID == studentID && sc.WorksheetID == worksheetID)
	})
	deleted := int64(len(s.scores) - len(kept))
	s.scores = kept
	return deleted, nil
}

func (s *fakeScoreStore) DistinctStudents() ([]string, error) {
	seen := make(map[string]struct{})
	var students []string
	for _, score := range s.scores {
		if _, ok := seen[score.StudentID]; !ok {
			seen[score.StudentID] = struct{}{}
			students = append(students, score.StudentID)
		}
	}
	sort.Strings(students)
	return students, nil
}

type fakeResponseStore struct {
	responses map[uint]*model.StudentResponse
	nextID    uint
}

func newFakeResponseStore() *fakeResponseStore {
	return &fakeResponseStore{responses: make(map[uint]*model.StudentResponse), nextID: 1}
}

func (s *fakeResponseStore) Create(response *model.StudentResponse) error {
	response.ID = s.nextID
	s.nextID++
	stored := *response
	s.responses[response.ID] = &stored
	return nil
}

func (s *fakeResponseStore) FindByID(id uint) (*model.StudentResponse, error) {
	r, ok := s.responses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *r
	return &copied, nil
}

func (s *fakeResponseStore) Update(response *model.StudentResponse) error {
	if _, ok := s.responses[response.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *response
	s.responses[response.ID] = &stored
	return nil
}

func (s *fakeResponseStore) FindByStudentAndWorksheet(studentID string, worksheetID uint) ([]model.StudentResponse, error) {
	var out []model.StudentResponse
	for _, r := range s.responses {
		if r.StudentID == studentID && r.WorksheetID == worksheetID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeResponseStore) FindUngraded() ([]model.StudentResponse, error) {
	var out []model.StudentResponse
	for _, r := range s.responses {
		if !r.IsGraded {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeResponseStore) DeleteByStudentAndWorksheet(studentID string, worksheetID uint) (int64, error) {
	var deleted int64
	for id, r := range s.responses {
		if r.StudentID == studentID && r.WorksheetID == worksheetID {
			delete(s.responses, id)
			deleted++
		}
	}
	return deleted, nil
}
