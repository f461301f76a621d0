package horses

import (
	"regexp"
	"time"
)

// Patrones según estándares internacionales:
// ISO-Nr (UELN): código de país ISO 3166 de 2 letras + ID de 13 dígitos.
// FEI-Nr: normalmente 8 dígitos o formato específico (p.ej. 107XX99).
// Chip-ID: código numérico de 15 dígitos (ISO 11784/11785).
var (
	isoNrPattern  = regexp.MustCompile(`^[A-Z]{2}\s?[0-9A-Z]{8,15}$`)
	feiNrPattern  = regexp.MustCompile(`^(\d{8}|\d{2}[A-Z]{2}\d{2,5})$`)
	chipIDPattern = regexp.MustCompile(`^\d{15}$`)
)

func ValidIsoNr(s string) bool  { return isoNrPattern.MatchString(s) }
func ValidFeiNr(s string) bool  { return feiNrPattern.MatchString(s) }
func ValidChipID(s string) bool { return chipIDPattern.MatchString(s) }

func ValidBirthYear(year int, now time.Time) bool {
	return year >= 1980 && year <= now.Year()
}

func ValidWeightKg(kg float64) bool {
	return kg >= 50 && kg <= 1500
}
