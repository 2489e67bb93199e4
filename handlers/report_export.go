package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/edwinjebakumar/clientportal/config"
	"github.com/edwinjebakumar/clientportal/models"
)

// ExportTemplateSubmissions writes every submission recorded against a
// template to an Excel workbook: one column per template field in display
// order, plus submitter and timestamp columns.
func ExportTemplateSubmissions(w http.ResponseWriter, r *http.Request) {
	templateID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid template id", http.StatusBadRequest)
		return
	}

	template, err := catalog().GetTemplate(templateID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var submissions []models.Submission
	err = config.DB.
		Joins("JOIN form_assignments ON form_assignments.id = submissions.form_assignment_id").
		Where("form_assignments.form_template_id = ?", templateID).
		Order("submissions.submitted_at desc").
		Find(&submissions).Error
	if err != nil {
		http.Error(w, "failed to fetch submissions", http.StatusInternalServerError)
		return
	}

	f, err := createSubmissionsWorkbook(template, submissions)
	if err != nil {
		http.Error(w, "failed to generate Excel file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("%s_%s.xlsx", sanitizeFilename(template.Name), time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	if err := f.Write(w); err != nil {
		http.Error(w, "failed to write Excel file", http.StatusInternalServerError)
	}
}

func createSubmissionsWorkbook(template *models.FormTemplate, submissions []models.Submission) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "Submissions"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
		},
	})
	f.SetCellValue(sheetName, "A1", template.Name)
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetRowHeight(sheetName, 1, 30)
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")))

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})

	// Header row: field labels in display order, then audit columns
	headers := make([]string, 0, len(template.Fields)+2)
	for _, field := range template.Fields {
		headers = append(headers, field.Label)
	}
	headers = append(headers, "Submitted By", "Submitted At")

	const headerRow = 4
	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, headerRow)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		col, _ := excelize.ColumnNumberToName(colIdx + 1)
		f.SetColWidth(sheetName, col, col, 20)
	}

	for rowIdx, submission := range submissions {
		var answers map[string]interface{}
		if err := json.Unmarshal(submission.DataJson, &answers); err != nil {
			answers = nil
		}

		row := headerRow + 1 + rowIdx
		for colIdx, field := range template.Fields {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
			if v, ok := answers[field.Label]; ok && v != nil {
				f.SetCellValue(sheetName, cell, fmt.Sprintf("%v", v))
			}
		}
		byCell, _ := excelize.CoordinatesToCellName(len(template.Fields)+1, row)
		f.SetCellValue(sheetName, byCell, submission.SubmittedByUserID)
		atCell, _ := excelize.CoordinatesToCellName(len(template.Fields)+2, row)
		f.SetCellValue(sheetName, atCell, submission.SubmittedAt.Format("2006-01-02 15:04:05"))
	}

	return f, nil
}

func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		" ", "_", "/", "_", "\\", "_", ":", "_",
		"*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_",
	)
	return replacer.Replace(name)
}
