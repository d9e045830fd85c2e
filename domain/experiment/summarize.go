package experiment

import (
	"github.com/Tranquil888/ab-testing-app/domain/core"
)

// Summarize partitions a cleaned dataset by arm and derives the descriptive
// statistics both test engines consume. Returns ErrEmptyGroup naming the
// empty arm when either has no members; a test cannot run in that case and
// the caller is expected to surface the condition, not crash.
func Summarize(ds *Dataset) (Summaries, error) {
	var nControl, convControl, nTreatment, convTreatment int
	for _, rec := range ds.Records {
		switch rec.Group {
		case GroupControl:
			nControl++
			convControl += rec.Converted
		case GroupTreatment:
			nTreatment++
			convTreatment += rec.Converted
		}
	}
	return NewSummaries(nControl, convControl, nTreatment, convTreatment)
}

// NewSummaries builds Summaries straight from per-arm counts, the entry
// point for callers that already hold aggregated numbers rather than rows.
func NewSummaries(nControl, convControl, nTreatment, convTreatment int) (Summaries, error) {
	if nControl == 0 {
		return Summaries{}, core.NewEmptyGroupError(string(GroupControl))
	}
	if nTreatment == 0 {
		return Summaries{}, core.NewEmptyGroupError(string(GroupTreatment))
	}

	control := NewGroupSummary(nControl, convControl)
	treatment := NewGroupSummary(nTreatment, convTreatment)

	return Summaries{
		Control:            control,
		Treatment:          treatment,
		PooledRate:         float64(convControl+convTreatment) / float64(nControl+nTreatment),
		ObservedDifference: control.Rate - treatment.Rate,
	}, nil
}
