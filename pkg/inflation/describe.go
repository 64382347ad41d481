package inflation

import (
	"sort"
	"strings"
)

// FallbackDescription is returned for years without a dedicated narrative.
const FallbackDescription = "Período de inflación significativa en la historia económica argentina."

var yearDescriptions = map[string]string{
	"1989": "El año de la hiperinflación más severa en la historia argentina moderna, con una tasa anual que superó el 3000%.",
	"1990": "Continuación de la crisis hiperinflacionaria del año anterior, aunque con una leve reducción.",
	"1984": "Período de alta inflación durante el gobierno de Alfonsín, marcado por la crisis de la deuda externa.",
	"1976": "Inicio del llamado \"Proceso de Reorganización Nacional\", con alta inflación estructural.",
	"1975": "Último año del gobierno peronista antes del golpe militar, caracterizado por desequilibrios macroeconómicos.",
	"1959": "Plan de estabilización de Frondizi, con ajustes que generaron alta inflación inicial.",
}

// Describe returns the historical narrative for year, or FallbackDescription.
func Describe(year string) string {
	if desc, ok := yearDescriptions[strings.TrimSpace(year)]; ok {
		return desc
	}
	return FallbackDescription
}

// DescribedYears lists the years that have a dedicated narrative.
func DescribedYears() []string {
	years := make([]string, 0, len(yearDescriptions))
	for year := range yearDescriptions {
		years = append(years, year)
	}
	sort.Strings(years)
	return years
}
