package notifications

import (
	"fmt"
	"html"
	"strings"

	"equimanage-server/internal/domain/compliance"
	"equimanage-server/internal/ports/email"
)

func statusWord(s compliance.Status) string {
	switch s {
	case compliance.StatusRed:
		return "kritisch"
	case compliance.StatusYellow:
		return "fällig"
	default:
		return "konform"
	}
}

func composeVaccEmail(to, ownerName string, newItems, allItems []VaccDueNotice) email.Message {
	plural := ""
	if len(newItems) > 1 {
		plural = "en"
	}

	var newLines, allLines []string
	for _, i := range newItems {
		newLines = append(newLines, fmt.Sprintf("• %s: %s (%s) – %s\n  %s",
			i.HorseName, i.Type, i.Sequence, statusWord(i.Status), i.Message))
	}
	for _, i := range allItems {
		allLines = append(allLines, fmt.Sprintf("• %s: %s (%s) – %s\n  %s",
			i.HorseName, i.Type, i.Sequence, statusWord(i.Status), i.Message))
	}

	intro := "Ein Pferd hat eine neue Fälligkeit"
	if len(newItems) > 1 {
		intro = fmt.Sprintf("%d Pferde haben neue Fälligkeiten", len(newItems))
	}

	body := fmt.Sprintf(`
	<h2>Impf-Fälligkeit%s</h2>
	<p>Hallo %s,</p>
	<p>%s:</p>
	<pre style="background:#f5f5f5;padding:1rem;border-radius:0.5rem;white-space:pre-wrap;">%s</pre>
	<h3>Alle aktuellen Fälligkeiten</h3>
	<pre style="background:#f5f5f5;padding:1rem;border-radius:0.5rem;white-space:pre-wrap;">%s</pre>
	<p>Bitte plane die Impfungen zeitnah.</p>
	<p>– EquiManage</p>`,
		plural,
		html.EscapeString(displayOrDefault(ownerName)),
		intro,
		html.EscapeString(strings.Join(newLines, "\n\n")),
		html.EscapeString(strings.Join(allLines, "\n\n")),
	)

	return email.Message{
		To:      to,
		Subject: fmt.Sprintf("EquiManage: Neue Impf-Fälligkeit%s", plural),
		HTML:    body,
	}
}

func composeHoofEmail(to, ownerName string, newItems, allItems []HoofDueNotice) email.Message {
	plural := ""
	if len(newItems) > 1 {
		plural = "e"
	}

	var newLines, allLines []string
	for _, i := range newItems {
		newLines = append(newLines, fmt.Sprintf("• %s – Hufschmied – %s\n  %s",
			i.HorseName, statusWord(i.Status), i.Message))
	}
	for _, i := range allItems {
		allLines = append(allLines, fmt.Sprintf("• %s – Hufschmied – %s\n  %s",
			i.HorseName, statusWord(i.Status), i.Message))
	}

	intro := "Ein Pferd benötigt einen Hufschmied-Termin"
	if len(newItems) > 1 {
		intro = fmt.Sprintf("%d Pferde benötigen Hufschmied-Termine", len(newItems))
	}

	body := fmt.Sprintf(`
	<h2>Hufschmied-Termin%s fällig</h2>
	<p>Hallo %s,</p>
	<p>%s:</p>
	<pre style="background:#f5f5f5;padding:1rem;border-radius:0.5rem;white-space:pre-wrap;">%s</pre>
	<h3>Alle offenen Hufschmied-Termine</h3>
	<pre style="background:#f5f5f5;padding:1rem;border-radius:0.5rem;white-space:pre-wrap;">%s</pre>
	<p>Bitte vereinbare zeitnah einen Termin.</p>
	<p>– EquiManage</p>`,
		plural,
		html.EscapeString(displayOrDefault(ownerName)),
		intro,
		html.EscapeString(strings.Join(newLines, "\n\n")),
		html.EscapeString(strings.Join(allLines, "\n\n")),
	)

	return email.Message{
		To:      to,
		Subject: fmt.Sprintf("EquiManage: Hufschmied-Termin%s fällig", plural),
		HTML:    body,
	}
}

func displayOrDefault(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Nutzer"
	}
	return name
}
