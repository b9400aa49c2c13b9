package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jg4611/mad2-by-amit/internal/apperr"
	"github.com/jg4611/mad2-by-amit/internal/repository"
)

type ChapterQuizLister interface {
	ListQuizzesByChapter(ctx context.Context, chapterID string) ([]*repository.Quiz, error)
}

type SubjectStore interface {
	CreateSubject(ctx context.Context, subject *repository.Subject) error
	GetSubjectByID(ctx context.Context, subjectID string) (*repository.Subject, error)
	ListSubjects(ctx context.Context) ([]*repository.Subject, error)
	UpdateSubject(ctx context.Context, subject *repository.Subject) error
	DeleteSubjectCascade(ctx context.Context, subjectID string) error
	CreateChapter(ctx context.Context, chapter *repository.Chapter) error
	GetChapterByID(ctx context.Context, chapterID string) (*repository.Chapter, error)
	ListChapters(ctx context.Context) ([]*repository.Chapter, error)
	ListChaptersBySubject(ctx context.Context, subjectID string) ([]*repository.Chapter, error)
	UpdateChapter(ctx context.Context, chapter *repository.Chapter) error
	DeleteChapterCascade(ctx context.Context, chapterID string) error
}

// CatalogService manages the subject/chapter hierarchy quizzes hang off.
type CatalogService struct {
	subjects SubjectStore
	quizzes  ChapterQuizLister
}

func NewCatalogService(subjects SubjectStore, quizzes ChapterQuizLister) *CatalogService {
	return &CatalogService{
		subjects: subjects,
		quizzes:  quizzes,
	}
}

func (s *CatalogService) CreateSubject(ctx context.Context, name, description string) (*repository.Subject, error) {
	if name == "" {
		return nil, apperr.Validation("name is required")
	}

	subject := &repository.Subject{Name: name, Description: description}
	if err := s.subjects.CreateSubject(ctx, subject); err != nil {
		return nil, fmt.Errorf("failed to create subject: %w", err)
	}

	return subject, nil
}

func (s *CatalogService) UpdateSubject(ctx context.Context, subjectID, name, description string) error {
	if name == "" {
		return apperr.Validation("name is required")
	}

	subject := &repository.Subject{ID: subjectID, Name: name, Description: description}
	err := s.subjects.UpdateSubject(ctx, subject)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("subject")
	}
	if err != nil {
		return fmt.Errorf("failed to update subject: %w", err)
	}

	return nil
}

// DeleteSubject removes the subject and everything under it, down to
// attempt scores, atomically.
func (s *CatalogService) DeleteSubject(ctx context.Context, subjectID string) error {
	err := s.subjects.DeleteSubjectCascade(ctx, subjectID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("subject")
	}
	if err != nil {
		return apperr.Conflict("failed to delete subject", err)
	}
	return nil
}

func (s *CatalogService) CreateChapter(ctx context.Context, subjectID, name, description string) (*repository.Chapter, error) {
	if name == "" {
		return nil, apperr.Validation("name is required")
	}

	if _, err := s.subjects.GetSubjectByID(ctx, subjectID); errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("subject")
	} else if err != nil {
		return nil, fmt.Errorf("failed to load subject: %w", err)
	}

	chapter := &repository.Chapter{SubjectID: subjectID, Name: name, Description: description}
	if err := s.subjects.CreateChapter(ctx, chapter); err != nil {
		return nil, fmt.Errorf("failed to create chapter: %w", err)
	}

	return chapter, nil
}

func (s *CatalogService) UpdateChapter(ctx context.Context, chapterID string, subjectID, name, description *string) (*repository.Chapter, error) {
	chapter, err := s.subjects.GetChapterByID(ctx, chapterID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("chapter")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chapter: %w", err)
	}

	if subjectID != nil {
		chapter.SubjectID = *subjectID
	}
	if name != nil {
		if *name == "" {
			return nil, apperr.Validation("name is required")
		}
		chapter.Name = *name
	}
	if description != nil {
		chapter.Description = *description
	}

	if err := s.subjects.UpdateChapter(ctx, chapter); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("chapter")
		}
		return nil, fmt.Errorf("failed to update chapter: %w", err)
	}

	return chapter, nil
}

// DeleteChapter removes the chapter and everything under it, down to
// attempt scores, atomically.
func (s *CatalogService) DeleteChapter(ctx context.Context, chapterID string) error {
	err := s.subjects.DeleteChapterCascade(ctx, chapterID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("chapter")
	}
	if err != nil {
		return apperr.Conflict("failed to delete chapter", err)
	}
	return nil
}

func (s *CatalogService) ListChapters(ctx context.Context) ([]*repository.Chapter, error) {
	chapters, err := s.subjects.ListChapters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}
	return chapters, nil
}

// SubjectTree is the full catalog: subjects with their chapters and each
// chapter's quizzes.
type SubjectTree struct {
	Subject  *repository.Subject
	Chapters []*ChapterTree
}

type ChapterTree struct {
	Chapter *repository.Chapter
	Quizzes []*repository.Quiz
}

func (s *CatalogService) GetSubjectTree(ctx context.Context) ([]*SubjectTree, error) {
	subjects, err := s.subjects.ListSubjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}

	var tree []*SubjectTree
	for _, subject := range subjects {
		chapters, err := s.subjects.ListChaptersBySubject(ctx, subject.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list chapters: %w", err)
		}

		node := &SubjectTree{Subject: subject}
		for _, chapter := range chapters {
			quizzes, err := s.quizzes.ListQuizzesByChapter(ctx, chapter.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to list quizzes: %w", err)
			}
			node.Chapters = append(node.Chapters, &ChapterTree{Chapter: chapter, Quizzes: quizzes})
		}
		tree = append(tree, node)
	}

	return tree, nil
}
