package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"equimanage-server/internal/domain/horses"
)

func horseWithFarrier(daysSince int) horses.Horse {
	return horses.Horse{
		ID:   "h-1",
		Name: "Luna",
		ServiceHistory: []horses.ServiceRecord{
			{ID: "s-1", Type: horses.ServiceFarrier, Date: asOf.AddDate(0, 0, -daysSince)},
		},
	}
}

func TestCheckHoofCare_NoHistory_Green(t *testing.T) {
	res := CheckHoofCare(horses.Horse{ID: "h-1"}, asOf)

	assert.Equal(t, StatusGreen, res.Status)
	assert.Equal(t, 0, res.DaysSince)
}

func TestCheckHoofCare_ExactBoundaries(t *testing.T) {
	// Los límites exactos: 42 verde, 43 amarillo, 56 amarillo, 57 rojo.
	cases := []struct {
		days     int
		expected Status
	}{
		{42, StatusGreen},
		{43, StatusYellow},
		{56, StatusYellow},
		{57, StatusRed},
	}

	for _, tc := range cases {
		res := CheckHoofCare(horseWithFarrier(tc.days), asOf)
		assert.Equal(t, tc.expected, res.Status, "days=%d", tc.days)
		assert.Equal(t, tc.days, res.DaysSince, "days=%d", tc.days)
	}
}

func TestCheckHoofCare_UsesMostRecentFarrierRecord(t *testing.T) {
	h := horses.Horse{
		ID: "h-1",
		ServiceHistory: []horses.ServiceRecord{
			{ID: "s-1", Type: horses.ServiceFarrier, Date: asOf.AddDate(0, 0, -90)},
			{ID: "s-2", Type: horses.ServiceFarrier, Date: asOf.AddDate(0, 0, -10)},
			{ID: "s-3", Type: horses.ServiceDeworming, Date: asOf.AddDate(0, 0, -1)},
		},
	}

	res := CheckHoofCare(h, asOf)

	assert.Equal(t, StatusGreen, res.Status)
	assert.Equal(t, 10, res.DaysSince)
}

func TestCheckHoofCare_IgnoresOtherServiceTypes(t *testing.T) {
	h := horses.Horse{
		ID: "h-1",
		ServiceHistory: []horses.ServiceRecord{
			{ID: "s-1", Type: horses.ServiceDentist, Date: asOf.AddDate(0, 0, -200)},
		},
	}

	res := CheckHoofCare(h, asOf)

	assert.Equal(t, StatusGreen, res.Status)
	assert.Equal(t, 0, res.DaysSince)
}

func TestHoofMessage(t *testing.T) {
	assert.Equal(t,
		"Letzter Schmied vor 60 Tagen. Dringend Termin vereinbaren.",
		HoofMessage(HoofResult{Status: StatusRed, DaysSince: 60}))
	assert.Equal(t,
		"Letzter Schmied vor 45 Tagen. Erinnere dich an einen Termin.",
		HoofMessage(HoofResult{Status: StatusYellow, DaysSince: 45}))
	assert.Equal(t, "", HoofMessage(HoofResult{Status: StatusGreen}))
}

func TestConsolidateActions_WorstFirst(t *testing.T) {
	yellowHorse := horses.Horse{
		ID:   "h-yellow",
		Name: "Rocky",
		Vaccinations: []horses.Vaccination{
			vacc(horses.CategoryInfluenza, asOf.AddDate(0, 0, -40), horses.SequenceV1),
		},
	}
	redHorse := horseWithFarrier(80)
	redHorse.ID = "h-red"
	redHorse.Name = "Thunder"
	redHorse.Vaccinations = []horses.Vaccination{
		vacc(horses.CategoryInfluenza, asOf.AddDate(0, 0, -5), horses.SequenceV1),
	}
	greenHorse := horses.Horse{
		ID:   "h-green",
		Name: "Spirit",
		Vaccinations: []horses.Vaccination{
			vacc(horses.CategoryInfluenza, asOf.AddDate(0, 0, -5), horses.SequenceV1),
		},
	}

	out := ConsolidateActions([]horses.Horse{yellowHorse, redHorse, greenHorse}, asOf)

	assert.Len(t, out, 2)
	assert.Equal(t, "h-red", out[0].HorseID)
	assert.Equal(t, StatusRed, out[0].HighestPriority)
	assert.Equal(t, "h-yellow", out[1].HorseID)
	assert.Equal(t, StatusYellow, out[1].HighestPriority)
}

func TestConsolidateActions_HoofMessageVariants(t *testing.T) {
	red := horseWithFarrier(80)
	red.Vaccinations = []horses.Vaccination{
		vacc(horses.CategoryInfluenza, asOf.AddDate(0, 0, -5), horses.SequenceV1),
	}
	out := ConsolidateActions([]horses.Horse{red}, asOf)

	assert.Len(t, out, 1)
	assert.Equal(t, ActionHoofCare, out[0].Tasks[0].Type)
	assert.Equal(t, "Hufschmied überfällig (über 8 Wochen)", out[0].Tasks[0].Message)
}

func TestFilterDueItems(t *testing.T) {
	items := []DueItem{
		{Type: horses.CategoryInfluenza, Status: StatusYellow},
		{Type: horses.CategoryTetanus, Status: StatusRed},
		{Type: horses.CategoryInfluenza, Status: StatusRed},
	}

	assert.Len(t, FilterDueItemsByCategory(items, horses.CategoryInfluenza), 2)
	assert.Len(t, FilterDueItemsByStatus(items, StatusRed), 2)
	assert.Empty(t, FilterDueItemsByStatus(items, StatusGreen))
}
