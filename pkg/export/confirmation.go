package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// ConfirmationData holds everything printed on a booking confirmation slip.
type ConfirmationData struct {
	Reference   string
	StudentName string
	TeacherName string
	CourseTitle string
	StartsAt    time.Time
	EndsAt      time.Time
	Duration    int
	MeetingLink string
	Location    string
}

// ConfirmationExporter renders booking confirmations as PDF slips.
type ConfirmationExporter struct{}

// NewConfirmationExporter constructs a ConfirmationExporter.
func NewConfirmationExporter() *ConfirmationExporter {
	return &ConfirmationExporter{}
}

// Render creates a single-page confirmation PDF for a booking.
func (e *ConfirmationExporter) Render(data ConfirmationData) ([]byte, error) {
	if data.Reference == "" {
		return nil, fmt.Errorf("confirmation requires a booking reference")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "BOOKING CONFIRMATION", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Reference: %s", data.Reference), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	rows := [][2]string{
		{"Student", data.StudentName},
		{"Teacher", data.TeacherName},
		{"Course", data.CourseTitle},
		{"Date", data.StartsAt.Format("Monday, 2 January 2006")},
		{"Time", fmt.Sprintf("%s - %s", data.StartsAt.Format("15:04"), data.EndsAt.Format("15:04"))},
		{"Duration", fmt.Sprintf("%d minutes", data.Duration)},
		{"Location", data.Location},
		{"Meeting link", data.MeetingLink},
	}

	for _, row := range rows {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(45, 9, row[0], "1", 0, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(135, 9, row[1], "1", 1, "", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 9)
	pdf.MultiCell(0, 5, "Cancellations are accepted up to 24 hours before the session start. Rescheduling is possible up to 2 hours before the session start.", "", "", false)

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render confirmation pdf: %w", err)
	}
	return buf.Bytes(), nil
}
