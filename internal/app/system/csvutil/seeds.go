// internal/app/system/csvutil/seeds.go
package csvutil

// Seed files, one account per row, header optional:
//   students: id,name,major,year,email
//   staff:    id,name,role,department,email
//   reps:     id,name,company,department,position,email,status
//
// The id column becomes the account's login id.

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dalemusser/placementhub/internal/app/system/inputval"
)

// ParseOptions bounds a parse.
type ParseOptions struct {
	MaxRows int // 0 means unlimited
}

// DefaultParseOptions returns options with no row limit.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{}
}

// Result holds the accepted rows of a seed file and the rejected ones.
type Result[T any] struct {
	Rows   []T
	Errors []RowError
}

// HasErrors returns true if any row was rejected.
func (r *Result[T]) HasErrors() bool {
	return len(r.Errors) > 0
}

// StudentRow is one applicant account.
type StudentRow struct {
	LoginID string
	Name    string
	Major   string
	Year    int
	Email   string
}

// StaffRow is one career-center staff account.
type StaffRow struct {
	LoginID    string
	Name       string
	Role       string
	Department string
	Email      string
}

// RepRow is one organization representative account.
type RepRow struct {
	LoginID    string
	Name       string
	Company    string
	Department string
	Position   string
	Email      string
	Authorized bool
}

// ParseStudents reads a students seed file.
func ParseStudents(r io.Reader, opts ParseOptions) (Result[StudentRow], error) {
	return parse(r, opts, 5, 4, func(rec []string) (StudentRow, string) {
		year, err := strconv.Atoi(rec[3])
		if err != nil || year < 1 || year > 4 {
			return StudentRow{}, fmt.Sprintf("year must be a number from 1 to 4, got %q", rec[3])
		}
		if rec[2] == "" {
			return StudentRow{}, "missing major"
		}
		return StudentRow{LoginID: rec[0], Name: rec[1], Major: rec[2], Year: year, Email: rec[4]}, ""
	})
}

// ParseStaff reads a staff seed file.
func ParseStaff(r io.Reader, opts ParseOptions) (Result[StaffRow], error) {
	return parse(r, opts, 5, 4, func(rec []string) (StaffRow, string) {
		return StaffRow{LoginID: rec[0], Name: rec[1], Role: rec[2], Department: rec[3], Email: rec[4]}, ""
	})
}

// ParseReps reads an organization representatives seed file. The status
// column is "approved" (or "authorized") for active accounts; "pending" or
// an empty cell leaves the account awaiting staff authorization.
func ParseReps(r io.Reader, opts ParseOptions) (Result[RepRow], error) {
	return parse(r, opts, 7, 5, func(rec []string) (RepRow, string) {
		var authorized bool
		switch strings.ToLower(rec[6]) {
		case "approved", "authorized":
			authorized = true
		case "pending", "":
		default:
			return RepRow{}, fmt.Sprintf("unknown status %q (want approved or pending)", rec[6])
		}
		if rec[2] == "" {
			return RepRow{}, "missing company"
		}
		return RepRow{
			LoginID:    rec[0],
			Name:       rec[1],
			Company:    rec[2],
			Department: rec[3],
			Position:   rec[4],
			Email:      rec[5],
			Authorized: authorized,
		}, ""
	})
}

// parse reads every record, skips a header and blank rows, checks the
// columns shared by all seed files (id, name, email), and hands the trimmed
// record to row. Rows that fail are collected, never fatal.
func parse[T any](r io.Reader, opts ParseOptions, fields, emailCol int, row func(rec []string) (T, string)) (Result[T], error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable fields
	reader.TrimLeadingSpace = true

	var result Result[T]
	seen := make(map[string]int) // lowercased login id -> first line

	for first := true; ; first = false {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				result.Errors = append(result.Errors, RowError{Line: pe.Line, Reason: pe.Err.Error()})
				continue
			}
			return result, err
		}
		line, _ := reader.FieldPos(0)

		if first && len(rec) > 0 {
			rec[0] = strings.TrimPrefix(rec[0], "\ufeff")
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		if blank(rec) {
			continue
		}
		if first && isHeaderRow(rec) {
			continue
		}
		if opts.MaxRows > 0 && len(result.Rows)+len(result.Errors) >= opts.MaxRows {
			return result, ErrTooManyRows
		}

		if len(rec) < fields {
			result.Errors = append(result.Errors, RowError{
				Line:   line,
				Reason: fmt.Sprintf("row must have %d fields, got %d", fields, len(rec)),
				Raw:    rec,
			})
			continue
		}
		if rec[0] == "" {
			result.Errors = append(result.Errors, RowError{Line: line, Reason: "missing id", Raw: rec})
			continue
		}
		if rec[1] == "" {
			result.Errors = append(result.Errors, RowError{Line: line, Reason: "missing name", Raw: rec})
			continue
		}
		if rec[emailCol] != "" && !inputval.IsValidEmail(rec[emailCol]) {
			result.Errors = append(result.Errors, RowError{Line: line, Reason: "invalid email format", Raw: rec})
			continue
		}
		key := strings.ToLower(rec[0])
		if prev, dup := seen[key]; dup {
			result.Errors = append(result.Errors, RowError{
				Line:   line,
				Reason: fmt.Sprintf("duplicate id (first appears on line %d)", prev),
				Raw:    rec,
			})
			continue
		}

		v, reason := row(rec)
		if reason != "" {
			result.Errors = append(result.Errors, RowError{Line: line, Reason: reason, Raw: rec})
			continue
		}
		seen[key] = line
		result.Rows = append(result.Rows, v)
	}
	return result, nil
}

// isHeaderRow treats a first row naming a "name" column as a header.
func isHeaderRow(rec []string) bool {
	for _, c := range rec {
		if strings.EqualFold(c, "name") {
			return true
		}
	}
	return false
}

func blank(rec []string) bool {
	for _, f := range rec {
		if f != "" {
			return false
		}
	}
	return true
}
