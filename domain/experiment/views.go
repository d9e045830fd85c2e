package experiment

import (
	"sort"
	"time"
)

// Auxiliary views over a cleaned dataset, consumed by visualization and
// segmentation layers. The hypothesis tests never read these.

// DailyConversion is one day's per-arm conversion tally
type DailyConversion struct {
	Day       time.Time    `json:"day"`
	Control   GroupSummary `json:"control"`
	Treatment GroupSummary `json:"treatment"`
}

// DailyConversions rolls records up by UTC calendar day. Records without a
// timestamp are skipped. Output is sorted by day.
func DailyConversions(ds *Dataset) []DailyConversion {
	type tally struct{ n, conv [2]int } // index 0 control, 1 treatment

	days := make(map[time.Time]*tally)
	for _, rec := range ds.Records {
		if rec.Timestamp.IsZero() {
			continue
		}
		y, m, d := rec.Timestamp.UTC().Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		t := days[day]
		if t == nil {
			t = &tally{}
			days[day] = t
		}
		arm := 0
		if rec.Group == GroupTreatment {
			arm = 1
		}
		t.n[arm]++
		t.conv[arm] += rec.Converted
	}

	out := make([]DailyConversion, 0, len(days))
	for day, t := range days {
		out = append(out, DailyConversion{
			Day:       day,
			Control:   NewGroupSummary(t.n[0], t.conv[0]),
			Treatment: NewGroupSummary(t.n[1], t.conv[1]),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out
}

// CountrySummary is one country's per-arm conversion tally
type CountrySummary struct {
	Country   string       `json:"country"`
	Control   GroupSummary `json:"control"`
	Treatment GroupSummary `json:"treatment"`
}

// MergeCountries returns a new dataset with each record's Country filled
// from a user_id -> country side table. Records without a mapping keep an
// empty country. The input dataset is not modified.
func MergeCountries(ds *Dataset, countries map[string]string) *Dataset {
	merged := &Dataset{
		Records: make([]Record, len(ds.Records)),
		Summary: ds.Summary,
	}
	for i, rec := range ds.Records {
		rec.Country = countries[rec.UserID]
		merged.Records[i] = rec
	}
	return merged
}

// SummarizeByCountry groups records by country, sorted by country name.
// Records with no country land under the empty key.
func SummarizeByCountry(ds *Dataset) []CountrySummary {
	type tally struct{ n, conv [2]int }

	byCountry := make(map[string]*tally)
	for _, rec := range ds.Records {
		t := byCountry[rec.Country]
		if t == nil {
			t = &tally{}
			byCountry[rec.Country] = t
		}
		arm := 0
		if rec.Group == GroupTreatment {
			arm = 1
		}
		t.n[arm]++
		t.conv[arm] += rec.Converted
	}

	out := make([]CountrySummary, 0, len(byCountry))
	for country, t := range byCountry {
		out = append(out, CountrySummary{
			Country:   country,
			Control:   NewGroupSummary(t.n[0], t.conv[0]),
			Treatment: NewGroupSummary(t.n[1], t.conv[1]),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Country < out[j].Country })
	return out
}
