package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// ReportService exports per-user performance as CSV for admins.
type ReportService struct {
	users  UserDirectory
	scores *ScoreService
}

func NewReportService(users UserDirectory, scores *ScoreService) *ReportService {
	return &ReportService{
		users:  users,
		scores: scores,
	}
}

var reportHeader = []string{
	"User ID",
	"Full Name",
	"Email",
	"Role",
	"Qualification",
	"Date of Birth",
	"Total Quizzes Taken",
	"Average Score (%)",
	"Best Score (%)",
	"Total Questions Attempted",
	"Last Quiz Date",
}

// WriteUserPerformanceCSV writes one row per user. Percentages are rounded to
// two decimal places; absent values are rendered as the literal "N/A".
func (s *ReportService) WriteUserPerformanceCSV(ctx context.Context, w io.Writer) error {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	writer := csv.NewWriter(w)

	if err := writer.Write(reportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, user := range users {
		perf, err := s.scores.Summarize(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("failed to summarize user %s: %w", user.ID, err)
		}

		dob := "N/A"
		if user.DateOfBirth.Valid {
			dob = user.DateOfBirth.Time.Format("2006-01-02")
		}

		lastAttempt := "N/A"
		if perf.LastAttemptTime != nil {
			lastAttempt = perf.LastAttemptTime.Format("2006-01-02 15:04:05")
		}

		fullName := user.FullName
		if fullName == "" {
			fullName = "N/A"
		}
		qualification := user.Qualification
		if qualification == "" {
			qualification = "N/A"
		}

		row := []string{
			user.ID,
			fullName,
			user.Email,
			user.Role,
			qualification,
			dob,
			strconv.Itoa(perf.TotalAttempts),
			formatPercent(perf.AveragePercent),
			formatPercent(perf.BestPercent),
			strconv.Itoa(perf.TotalQuestionsAttempted),
			lastAttempt,
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatPercent(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
