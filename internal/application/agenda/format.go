package agenda

import (
	"fmt"
	"strings"

	"github.com/bonitoviento/backend/internal/domain/agenda"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCase capitalizes names the way they are written in Spanish
func titleCase(s string) string {
	return cases.Title(language.Spanish).String(strings.TrimSpace(s))
}

func actionTitle(base string, action agenda.Action) string {
	switch action {
	case agenda.ActionUpdate:
		return base + " (actualización)"
	case agenda.ActionDelete:
		return base + " (eliminación)"
	default:
		return base
	}
}

func describeSupply(quantity, unit, product string) string {
	return fmt.Sprintf("%s %s de %s", quantity, unit, product)
}

func formatPesos(amount string) string {
	return "$" + amount
}
