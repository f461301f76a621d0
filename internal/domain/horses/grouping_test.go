package horses

import (
	"testing"
	"time"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestGroupVaccinationsByYear_Ordering(t *testing.T) {
	vaccs := []Vaccination{
		{ID: "a", Type: CategoryInfluenza, Date: day(2024, 3, 1)},
		{ID: "b", Type: CategoryInfluenza, Date: day(2026, 1, 15)},
		{ID: "c", Type: CategoryTetanus, Date: day(2026, 6, 2)},
		{ID: "d", Type: CategoryHerpes, Date: day(2024, 11, 20)},
	}

	groups := GroupVaccinationsByYear(vaccs)
	if len(groups) != 2 {
		t.Fatalf("expected 2 year groups, got %d", len(groups))
	}
	// Años descendentes, fechas descendentes dentro de cada año.
	if groups[0].Year != 2026 || groups[1].Year != 2024 {
		t.Fatalf("expected years [2026 2024], got [%d %d]", groups[0].Year, groups[1].Year)
	}
	if groups[0].Items[0].ID != "c" || groups[0].Items[1].ID != "b" {
		t.Fatalf("expected 2026 items [c b], got %#v", groups[0].Items)
	}
	if groups[1].Items[0].ID != "d" || groups[1].Items[1].ID != "a" {
		t.Fatalf("expected 2024 items [d a], got %#v", groups[1].Items)
	}
}

func TestGroupServicesByYear_Empty(t *testing.T) {
	groups := GroupServicesByYear(nil)
	if len(groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(groups))
	}
}

func TestGroupVaccinationsByCategory(t *testing.T) {
	vaccs := []Vaccination{
		{ID: "a", Type: CategoryInfluenza, Date: day(2025, 3, 1)},
		{ID: "b", Type: CategoryInfluenza, Date: day(2025, 9, 1)},
		{ID: "c", Type: CategoryTetanus, Date: day(2025, 5, 1)},
	}

	byType := GroupVaccinationsByCategory(vaccs)
	if len(byType) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(byType))
	}
	flu := byType[CategoryInfluenza]
	if len(flu) != 2 || flu[0].ID != "b" || flu[1].ID != "a" {
		t.Fatalf("expected influenza [b a], got %#v", flu)
	}
}
