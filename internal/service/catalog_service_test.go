package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jg4611/mad2-by-amit/internal/apperr"
	"github.com/jg4611/mad2-by-amit/internal/repository"
)

type fakeSubjectStore struct {
	subjects map[string]*repository.Subject
	chapters map[string]*repository.Chapter

	cascadedSubjects []string
	cascadedChapters []string
	deleteErr        error
}

func newFakeSubjectStore() *fakeSubjectStore {
	return &fakeSubjectStore{
		subjects: map[string]*repository.Subject{
			"subj-1": {ID: "subj-1", Name: "Physics"},
		},
		chapters: map[string]*repository.Chapter{
			"chap-1": {ID: "chap-1", SubjectID: "subj-1", Name: "Optics"},
		},
	}
}

func (s *fakeSubjectStore) CreateSubject(ctx context.Context, subject *repository.Subject) error {
	if subject.ID == "" {
		subject.ID = "subj-" + subject.Name
	}
	s.subjects[subject.ID] = subject
	return nil
}

func (s *fakeSubjectStore) GetSubjectByID(ctx context.Context, subjectID string) (*repository.Subject, error) {
	subject, ok := s.subjects[subjectID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return subject, nil
}

func (s *fakeSubjectStore) ListSubjects(ctx context.Context) ([]*repository.Subject, error) {
	var subjects []*repository.Subject
	for _, subject := range s.subjects {
		subjects = append(subjects, subject)
	}
	return subjects, nil
}

func (s *fakeSubjectStore) UpdateSubject(ctx context.Context, subject *repository.Subject) error {
	if _, ok := s.subjects[subject.ID]; !ok {
		return sql.ErrNoRows
	}
	s.subjects[subject.ID] = subject
	return nil
}

func (s *fakeSubjectStore) DeleteSubjectCascade(ctx context.Context, subjectID string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.subjects[subjectID]; !ok {
		return sql.ErrNoRows
	}
	delete(s.subjects, subjectID)
	for id, chapter := range s.chapters {
		if chapter.SubjectID == subjectID {
			delete(s.chapters, id)
		}
	}
	s.cascadedSubjects = append(s.cascadedSubjects, subjectID)
	return nil
}

func (s *fakeSubjectStore) CreateChapter(ctx context.Context, chapter *repository.Chapter) error {
	if chapter.ID == "" {
		chapter.ID = "chap-" + chapter.Name
	}
	s.chapters[chapter.ID] = chapter
	return nil
}

func (s *fakeSubjectStore) GetChapterByID(ctx context.Context, chapterID string) (*repository.Chapter, error) {
	chapter, ok := s.chapters[chapterID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return chapter, nil
}

func (s *fakeSubjectStore) ListChapters(ctx context.Context) ([]*repository.Chapter, error) {
	var chapters []*repository.Chapter
	for _, chapter := range s.chapters {
		chapters = append(chapters, chapter)
	}
	return chapters, nil
}

func (s *fakeSubjectStore) ListChaptersBySubject(ctx context.Context, subjectID string) ([]*repository.Chapter, error) {
	var chapters []*repository.Chapter
	for _, chapter := range s.chapters {
		if chapter.SubjectID == subjectID {
			chapters = append(chapters, chapter)
		}
	}
	return chapters, nil
}

func (s *fakeSubjectStore) UpdateChapter(ctx context.Context, chapter *repository.Chapter) error {
	if _, ok := s.chapters[chapter.ID]; !ok {
		return sql.ErrNoRows
	}
	s.chapters[chapter.ID] = chapter
	return nil
}

func (s *fakeSubjectStore) DeleteChapterCascade(ctx context.Context, chapterID string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.chapters[chapterID]; !ok {
		return sql.ErrNoRows
	}
	delete(s.chapters, chapterID)
	s.cascadedChapters = append(s.cascadedChapters, chapterID)
	return nil
}

func TestDeleteSubjectCascades(t *testing.T) {
	store := newFakeSubjectStore()
	catalog := NewCatalogService(store, nil)

	if err := catalog.DeleteSubject(context.Background(), "subj-1"); err != nil {
		t.Fatalf("DeleteSubject() error = %v", err)
	}

	if len(store.cascadedSubjects) != 1 || store.cascadedSubjects[0] != "subj-1" {
		t.Errorf("cascaded subjects = %v, want [subj-1]", store.cascadedSubjects)
	}
	if len(store.chapters) != 0 {
		t.Errorf("chapters remaining after cascade = %d, want 0", len(store.chapters))
	}
}

func TestDeleteChapterCascades(t *testing.T) {
	store := newFakeSubjectStore()
	catalog := NewCatalogService(store, nil)

	if err := catalog.DeleteChapter(context.Background(), "chap-1"); err != nil {
		t.Fatalf("DeleteChapter() error = %v", err)
	}

	if len(store.cascadedChapters) != 1 || store.cascadedChapters[0] != "chap-1" {
		t.Errorf("cascaded chapters = %v, want [chap-1]", store.cascadedChapters)
	}
}

func TestDeleteCatalogErrors(t *testing.T) {
	tests := []struct {
		name      string
		deleteErr error
		run       func(*CatalogService) error
		kind      apperr.Kind
	}{
		{
			name: "unknown subject",
			run: func(c *CatalogService) error {
				return c.DeleteSubject(context.Background(), "missing")
			},
			kind: apperr.KindNotFound,
		},
		{
			name: "unknown chapter",
			run: func(c *CatalogService) error {
				return c.DeleteChapter(context.Background(), "missing")
			},
			kind: apperr.KindNotFound,
		},
		{
			name:      "subject delete failure surfaces as conflict",
			deleteErr: errors.New("deadlock detected"),
			run: func(c *CatalogService) error {
				return c.DeleteSubject(context.Background(), "subj-1")
			},
			kind: apperr.KindConflict,
		},
		{
			name:      "chapter delete failure surfaces as conflict",
			deleteErr: errors.New("deadlock detected"),
			run: func(c *CatalogService) error {
				return c.DeleteChapter(context.Background(), "chap-1")
			},
			kind: apperr.KindConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeSubjectStore()
			store.deleteErr = tt.deleteErr
			catalog := NewCatalogService(store, nil)

			err := tt.run(catalog)
			var appErr *apperr.Error
			if !errors.As(err, &appErr) || appErr.Kind != tt.kind {
				t.Errorf("error = %v, want kind %v", err, tt.kind)
			}
		})
	}
}
