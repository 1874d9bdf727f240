package workflow

import (
	"strings"
	"time"

	"github.com/sbhworks/indentflow/internal/schema"
	"github.com/sbhworks/indentflow/internal/sheet"
)

// Stats is the dashboard aggregate over the full indent sheet.
type Stats struct {
	TotalIndents     int `json:"totalIndents"`
	PendingApprovals int `json:"pendingApprovals"`
	Approved         int `json:"approved"`
	Completed        int `json:"completed"`
	WorkInProgress   int `json:"workInProgress"`
	Inspected        int `json:"inspected"`
	PaymentDone      int `json:"paymentDone"`

	BarData  []NamedCount `json:"barData"`
	PieData  []NamedCount `json:"pieData"`
	LineData []TrendPoint `json:"lineData"`
}

// NamedCount is one labelled scalar in a chart series.
type NamedCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// TrendPoint is one month in the 6-month completed/pending trend.
type TrendPoint struct {
	Name      string `json:"name"`
	Completed int    `json:"completed"`
	Pending   int    `json:"pending"`
}

type monthTally struct {
	completed int
	pending   int
}

// Aggregate computes dashboard statistics from the indent sheet's data rows.
// The trend's reference month is the latest creation timestamp found in the
// sheet, falling back to now for an empty sheet.
func Aggregate(records []sheet.Record, now time.Time) Stats {
	var s Stats

	months := map[string]monthTally{}
	var latest time.Time

	for _, rec := range records {
		row := rec.Cells
		if len(row) == 0 {
			continue
		}

		if row.Get(schema.ColTimestamp) != "" {
			s.TotalIndents++
		}

		status := strings.ToLower(strings.TrimSpace(row.Get(schema.ColApprovalStatus)))
		rejected := status == schema.StatusRejected
		switch status {
		case schema.StatusApproved:
			s.Approved++
		default:
			// Rejected and undecided rows both count against pending.
			s.PendingApprovals++
		}

		result := strings.ToLower(strings.TrimSpace(row.Get(schema.ColInspectionResult)))
		completed := result == "done" || result == "completed"
		if completed {
			s.Completed++
			s.Inspected++
		} else if !rejected {
			s.WorkInProgress++
		}

		if row.Get(schema.ColPaymentActual) != "" {
			s.PaymentDone++
		}

		created, ok := sheet.ParseTimestamp(row.Get(schema.ColTimestamp))
		if !ok {
			continue
		}
		if created.After(latest) {
			latest = created
		}
		key := created.Format("2006-01")
		tally := months[key]
		if completed {
			tally.completed++
		} else {
			tally.pending++
		}
		months[key] = tally
	}

	assigned := s.TotalIndents - s.PendingApprovals - s.Approved
	if assigned < 0 {
		assigned = 0
	}
	inProgress := s.Approved - s.Completed
	if inProgress < 0 {
		inProgress = 0
	}

	s.BarData = []NamedCount{
		{Name: "Total", Value: s.TotalIndents},
		{Name: "Pending", Value: s.PendingApprovals},
		{Name: "Approved", Value: s.Approved},
		{Name: "Assigned", Value: assigned},
	}
	s.PieData = []NamedCount{
		{Name: "Completed", Value: s.Completed},
		{Name: "In Progress", Value: inProgress},
		{Name: "Pending", Value: s.PendingApprovals},
	}

	reference := now
	if !latest.IsZero() {
		reference = latest
	}

	s.LineData = make([]TrendPoint, 0, 6)
	for i := 5; i >= 0; i-- {
		month := time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, -i, 0)
		tally := months[month.Format("2006-01")]
		s.LineData = append(s.LineData, TrendPoint{
			Name:      month.Format("Jan 2006"),
			Completed: tally.completed,
			Pending:   tally.pending,
		})
	}

	return s
}

// MockStats is the fixed fallback dataset shown when the sheet is
// unreachable, so the dashboard always renders.
func MockStats() Stats {
	return Stats{
		TotalIndents:     120,
		PendingApprovals: 35,
		Approved:         45,
		Completed:        42,
		WorkInProgress:   28,
		Inspected:        36,
		PaymentDone:      42,
		BarData: []NamedCount{
			{Name: "Total", Value: 120},
			{Name: "Pending", Value: 35},
			{Name: "Approved", Value: 45},
			{Name: "Assigned", Value: 40},
		},
		PieData: []NamedCount{
			{Name: "Completed", Value: 42},
			{Name: "In Progress", Value: 28},
			{Name: "Pending", Value: 20},
		},
		LineData: []TrendPoint{
			{Name: "Jan 2025", Completed: 12, Pending: 8},
			{Name: "Feb 2025", Completed: 19, Pending: 12},
			{Name: "Mar 2025", Completed: 25, Pending: 10},
			{Name: "Apr 2025", Completed: 28, Pending: 15},
			{Name: "May 2025", Completed: 35, Pending: 8},
			{Name: "Jun 2025", Completed: 42, Pending: 6},
		},
	}
}
