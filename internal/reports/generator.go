package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caloclash/caloclash/internal/profiles"
	"github.com/caloclash/caloclash/internal/progression"
	"github.com/jung-kurt/gofpdf"
)

// Report formats.
const (
	FormatPDF = "pdf"
	FormatCSV = "csv"
)

// Generator renders a profile summary (plan, today's log, progression) to
// PDF or CSV bytes. It is purely local; the caller decides where the
// bytes go.
type Generator struct{}

// NewGenerator creates a report generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the profile in the requested format.
func (g *Generator) Generate(p profiles.Profile, format string) ([]byte, error) {
	switch format {
	case FormatPDF:
		return g.generatePDF(p)
	case FormatCSV:
		return g.generateCSV(p)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// generateCSV writes section/field/value rows followed by one row per
// logged meal.
func (g *Generator) generateCSV(p profiles.Profile) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	totals := profiles.SumToday(p)
	rows := [][]string{
		{"section", "field", "value"},
		{"profile", "name", p.Name},
		{"profile", "goal", p.UserData.Goal},
		{"plan", "calories", strconv.Itoa(p.Plan.Calories)},
		{"plan", "protein_g", strconv.Itoa(p.Plan.Protein)},
		{"plan", "carbs_g", strconv.Itoa(p.Plan.Carbs)},
		{"plan", "fats_g", strconv.Itoa(p.Plan.Fats)},
		{"plan", "bmr", strconv.Itoa(p.Plan.BMR)},
		{"plan", "tdee", strconv.Itoa(p.Plan.TDEE)},
		{"today", "date", p.LastSaveDate.String()},
		{"today", "calories", strconv.Itoa(totals.Calories)},
		{"today", "protein_g", strconv.Itoa(totals.Protein)},
		{"today", "carbs_g", strconv.Itoa(totals.Carbs)},
		{"today", "fats_g", strconv.Itoa(totals.Fats)},
		{"today", "water_glasses", strconv.Itoa(p.WaterIntake)},
		{"progression", "points", strconv.Itoa(p.Gamification.Points)},
		{"progression", "level", strconv.Itoa(p.Gamification.Level)},
		{"progression", "streak", strconv.Itoa(p.Gamification.Streak)},
		{"progression", "meals_logged", strconv.Itoa(p.Gamification.TotalMealsLogged)},
		{"progression", "badges", strings.Join(p.Gamification.Badges, ";")},
	}
	for _, m := range p.TodayMeals {
		rows = append(rows, []string{"meal", fmt.Sprintf("%s (%s)", m.Name, m.Type), strconv.Itoa(int(m.Calories))})
	}

	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) generatePDF(p profiles.Profile) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Nutrition Profile Report")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("%s — %s", p.Name, time.Now().Format("2006-01-02")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, "Daily plan")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Calories: %d kcal (BMR %d, TDEE %d)", p.Plan.Calories, p.Plan.BMR, p.Plan.TDEE))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Protein %d g / Carbs %d g / Fats %d g", p.Plan.Protein, p.Plan.Carbs, p.Plan.Fats))
	pdf.Ln(12)

	totals := profiles.SumToday(p)
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, fmt.Sprintf("Today (%s)", p.LastSaveDate))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Eaten: %d kcal of %d", totals.Calories, p.Plan.Calories))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Water: %d glasses", p.WaterIntake))
	pdf.Ln(5)
	for _, m := range p.TodayMeals {
		pdf.Cell(0, 6, fmt.Sprintf("  %s (%s): %d kcal", m.Name, m.Type, int(m.Calories)))
		pdf.Ln(5)
	}
	pdf.Ln(7)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, "Progression")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Level %d, %d points, %d day streak, %d meals logged",
		p.Gamification.Level, p.Gamification.Points, p.Gamification.Streak, p.Gamification.TotalMealsLogged))
	pdf.Ln(5)
	for _, id := range p.Gamification.Badges {
		name := id
		if b, ok := progression.BadgeInfo(id); ok {
			name = fmt.Sprintf("%s (%s)", b.Name, b.Description)
		}
		pdf.Cell(0, 6, "  "+name)
		pdf.Ln(5)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return buf.Bytes(), nil
}
