package services

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// ResponseRow is one answer flattened for long-format export.
type ResponseRow struct {
	ResponseID  string
	Respondent  string
	Contact     string
	QuestionID  string
	Question    string
	Answer      string
	Category    string
	SubmittedAt string // ISO8601
}

var exportHeader = []string{
	"response_id", "respondent", "contact", "question_id", "question",
	"answer", "category", "submitted_at",
}

// ExportResponsesCSV renders rows into a long-format CSV, one row per answer.
func ExportResponsesCSV(rows []ResponseRow) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write(exportHeader)
	for _, r := range rows {
		if err := w.Write(r.record()); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func (r ResponseRow) record() []string {
	return []string{
		r.ResponseID, r.Respondent, r.Contact, r.QuestionID, r.Question,
		r.Answer, r.Category, r.SubmittedAt,
	}
}

// FormatAnswer renders a tagged answer for export.
func FormatAnswer(a Answer) string {
	if n, ok := a.Numeric(); ok {
		return strconv.Itoa(n)
	}
	return a.Token
}
