package horses

import "sort"

// YearGroup agrupa registros de un mismo año para los paneles de
// historial colapsables (años descendentes, fechas descendentes).
type VaccinationYearGroup struct {
	Year  int
	Items []Vaccination
}

type ServiceYearGroup struct {
	Year  int
	Items []ServiceRecord
}

func GroupVaccinationsByYear(vaccs []Vaccination) []VaccinationYearGroup {
	byYear := map[int][]Vaccination{}
	for _, v := range vaccs {
		y := v.Date.Year()
		byYear[y] = append(byYear[y], v)
	}

	out := make([]VaccinationYearGroup, 0, len(byYear))
	for y, items := range byYear {
		sort.Slice(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
		out = append(out, VaccinationYearGroup{Year: y, Items: items})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out
}

func GroupServicesByYear(records []ServiceRecord) []ServiceYearGroup {
	byYear := map[int][]ServiceRecord{}
	for _, r := range records {
		y := r.Date.Year()
		byYear[y] = append(byYear[y], r)
	}

	out := make([]ServiceYearGroup, 0, len(byYear))
	for y, items := range byYear {
		sort.Slice(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
		out = append(out, ServiceYearGroup{Year: y, Items: items})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out
}

// GroupVaccinationsByCategory agrupa por categoría en orden estable de
// enumeración, con fechas descendentes dentro de cada grupo.
func GroupVaccinationsByCategory(vaccs []Vaccination) map[VaccCategory][]Vaccination {
	byType := map[VaccCategory][]Vaccination{}
	for _, v := range vaccs {
		byType[v.Type] = append(byType[v.Type], v)
	}
	for _, items := range byType {
		sort.Slice(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
	}
	return byType
}
