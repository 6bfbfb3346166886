package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/leoclub/points-tracker-api/internal/domain"
	"github.com/leoclub/points-tracker-api/internal/repository"
)

// headerRowOffset maps a 0-indexed data row onto the spreadsheet row
// number users see: row 0 of data is spreadsheet row 2.
const headerRowOffset = 2

type ImportMemberRepository interface {
	FindByRegNo(ctx context.Context, regNo string) (domain.Member, error)
	Create(ctx context.Context, member domain.Member) (domain.Member, error)
}

// ImportService admits externally supplied member rows one at a time.
// Rows are processed strictly in order; a rejected row never aborts the
// batch and nothing is rolled back.
type ImportService struct {
	members ImportMemberRepository
}

func NewImportService(members ImportMemberRepository) *ImportService {
	return &ImportService{
		members: members,
	}
}

func (s *ImportService) ImportMembers(ctx context.Context, acting domain.ActingUser, rows []domain.ImportRow) (domain.ImportResult, error) {
	if !acting.Capabilities().CanEdit {
		return domain.ImportResult{}, ErrPermissionDenied
	}

	result := domain.ImportResult{
		Errors: []domain.ImportRowError{},
	}

	for i, row := range rows {
		rowNumber := i + headerRowOffset

		if rowErrs := validateImportRow(row); len(rowErrs) > 0 {
			result.Failed++
			result.Errors = append(result.Errors, domain.ImportRowError{
				Row:   rowNumber,
				Error: strings.Join(rowErrs, ", "),
				Data:  row,
			})
			continue
		}

		regNo := strings.TrimSpace(row.RegNo)

		// Purely additive import: an existing member rejects the row,
		// never an upsert. The store's unique constraint backstops the
		// race between this check and the insert below.
		_, err := s.members.FindByRegNo(ctx, regNo)
		if err == nil {
			result.Failed++
			result.Errors = append(result.Errors, domain.ImportRowError{
				Row:   rowNumber,
				Error: fmt.Sprintf("Member with registration number %s already exists", regNo),
				Data:  row,
			})
			continue
		}
		if !errors.Is(err, repository.ErrMemberNotFound) {
			result.Failed++
			result.Errors = append(result.Errors, domain.ImportRowError{
				Row:   rowNumber,
				Error: err.Error(),
				Data:  row,
			})
			continue
		}

		member := domain.Member{
			RegNo:            regNo,
			FullName:         strings.TrimSpace(row.FullName),
			NameWithInitials: strings.TrimSpace(row.NameWithInitials),
			Batch:            strings.TrimSpace(row.Batch),
			Faculty:          strings.TrimSpace(row.Faculty),
			WhatsApp:         strings.TrimSpace(row.WhatsApp),
			TotalPoints:      0,
		}
		if trimmed := strings.TrimSpace(row.MyLCINum); trimmed != "" {
			member.MyLCINum = &trimmed
		}

		if _, err = s.members.Create(ctx, member); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, domain.ImportRowError{
				Row:   rowNumber,
				Error: err.Error(),
				Data:  row,
			})
			continue
		}

		result.Success++
	}

	return result, nil
}

func validateImportRow(row domain.ImportRow) []string {
	var errs []string

	if strings.TrimSpace(row.RegNo) == "" {
		errs = append(errs, "Registration number is required")
	}
	if strings.TrimSpace(row.FullName) == "" {
		errs = append(errs, "Full name is required")
	}
	if strings.TrimSpace(row.NameWithInitials) == "" {
		errs = append(errs, "Name with initials is required")
	}
	if strings.TrimSpace(row.Batch) == "" {
		errs = append(errs, "Batch is required")
	}
	if strings.TrimSpace(row.Faculty) == "" {
		errs = append(errs, "Faculty is required")
	}
	if strings.TrimSpace(row.WhatsApp) == "" {
		errs = append(errs, "WhatsApp number is required")
	}

	return errs
}
