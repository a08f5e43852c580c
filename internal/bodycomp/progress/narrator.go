package progress

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/2beens/bodycomp/internal/bodycomp"
)

const (
	fatPctThreshold        = 0.1
	massThreshold          = 0.1
	circumferenceThreshold = 0.5
)

// Line is a single human readable progress statement.
type Line struct {
	Text     string `json:"text"`
	Positive bool   `json:"positive"`
}

// Snapshot is the part of an assessment the narrator looks at.
// Nil values mean "not measured" and suppress the related line.
type Snapshot struct {
	BodyFatPct     *float64                `json:"bodyFatPct,omitempty"`
	FatMassKg      *float64                `json:"fatMassKg,omitempty"`
	LeanMassKg     *float64                `json:"leanMassKg,omitempty"`
	Circumferences bodycomp.Circumferences `json:"circumferences"`
}

type circumferenceMetric struct {
	label string
	value func(c bodycomp.Circumferences) *float64
	// growthIsProgress: true when an increase is progress, false when a reduction is
	growthIsProgress bool
}

// trackedCircumferences is both the polarity table and the output order.
var trackedCircumferences = []circumferenceMetric{
	{label: "Waist", value: func(c bodycomp.Circumferences) *float64 { return c.Waist }},
	{label: "Abdomen", value: func(c bodycomp.Circumferences) *float64 { return c.Abdomen }},
	{label: "Hip", value: func(c bodycomp.Circumferences) *float64 { return c.Hip }},
	{label: "Contracted arm", value: func(c bodycomp.Circumferences) *float64 { return c.ArmContracted }, growthIsProgress: true},
	{label: "Chest", value: func(c bodycomp.Circumferences) *float64 { return c.Chest }, growthIsProgress: true},
}

// Narrate compares the first and the last snapshot and describes what changed.
// Snapshots must already be ordered by measurement date, ascending; anything
// between the first and the last one is ignored.
// Fewer than two snapshots, or nothing worth reporting, gives an empty slice.
func Narrate(snapshots []Snapshot) []Line {
	lines := make([]Line, 0)
	if len(snapshots) < 2 {
		return lines
	}

	first := snapshots[0]
	last := snapshots[len(snapshots)-1]

	if line, ok := fatPctLine(first.BodyFatPct, last.BodyFatPct); ok {
		lines = append(lines, line)
	}

	if line, ok := massLine(first, last); ok {
		lines = append(lines, line)
	}

	for _, metric := range trackedCircumferences {
		if line, ok := circumferenceLine(metric, first.Circumferences, last.Circumferences); ok {
			lines = append(lines, line)
		}
	}

	return lines
}

func fatPctLine(from, to *float64) (Line, bool) {
	if from == nil || to == nil {
		return Line{}, false
	}

	delta := *to - *from
	if math.Abs(delta) < fatPctThreshold {
		return Line{}, false
	}

	verb := "rose"
	if delta < 0 {
		verb = "fell"
	}

	return Line{
		Text:     fmt.Sprintf("Body fat %s from %s%% to %s%%", verb, formatValue(*from), formatValue(*to)),
		Positive: delta < 0,
	}, true
}

func massLine(first, last Snapshot) (Line, bool) {
	if first.FatMassKg == nil || last.FatMassKg == nil ||
		first.LeanMassKg == nil || last.LeanMassKg == nil {
		return Line{}, false
	}

	fatDelta := *last.FatMassKg - *first.FatMassKg
	leanDelta := *last.LeanMassKg - *first.LeanMassKg
	if math.Abs(fatDelta) < massThreshold && math.Abs(leanDelta) < massThreshold {
		return Line{}, false
	}

	var phrases []string
	switch {
	case fatDelta < -massThreshold:
		phrases = append(phrases, fmt.Sprintf("lost %.1fkg fat", -fatDelta))
	case fatDelta > massThreshold:
		phrases = append(phrases, fmt.Sprintf("gained %.1fkg fat", fatDelta))
	}
	switch {
	case leanDelta > massThreshold:
		phrases = append(phrases, fmt.Sprintf("gained %.1fkg lean mass", leanDelta))
	case leanDelta < -massThreshold:
		phrases = append(phrases, fmt.Sprintf("lost %.1fkg lean mass", -leanDelta))
	}

	if len(phrases) == 0 {
		return Line{}, false
	}

	text := strings.Join(phrases, " and ")
	return Line{
		Text: strings.ToUpper(text[:1]) + text[1:],
		// one combined flag, even when the phrases point in different directions
		Positive: fatDelta <= 0 && leanDelta >= 0,
	}, true
}

func circumferenceLine(metric circumferenceMetric, first, last bodycomp.Circumferences) (Line, bool) {
	from := metric.value(first)
	to := metric.value(last)
	if from == nil || to == nil {
		return Line{}, false
	}

	delta := *to - *from
	if math.Abs(delta) < circumferenceThreshold {
		return Line{}, false
	}

	verb := "increased"
	if delta < 0 {
		verb = "decreased"
	}

	positive := delta < 0
	if metric.growthIsProgress {
		positive = delta > 0
	}

	return Line{
		Text: fmt.Sprintf(
			"%s %s by %.1fcm (%scm → %scm)",
			metric.label, verb, math.Abs(delta), formatValue(*from), formatValue(*to),
		),
		Positive: positive,
	}, true
}

// formatValue prints a stored measurement without trailing zeros, e.g. 20 or 19.85.
func formatValue(v float64) string {
	return strconv.FormatFloat(bodycomp.Round(v, 2), 'f', -1, 64)
}
