package patient

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// View is the denormalized shape the front end consumes: one patient combined
// with its visit history and blood-pressure series, with display fallbacks
// already applied.
type View struct {
	ID          string       `json:"id"`
	FirstName   string       `json:"firstName"`
	MiddleName  string       `json:"middleName"`
	LastName    string       `json:"lastName"`
	Age         int          `json:"age"`
	Sex         string       `json:"sex"`
	Civil       string       `json:"civil"`
	HomeAddress string       `json:"homeAddress"`
	Purok       string       `json:"purok"`
	Height      float64      `json:"height"`
	Weight      float64      `json:"weight"`
	Contact     string       `json:"contact"`
	Status      string       `json:"status"`
	Notes       string       `json:"notes"`
	BP          []BPPoint    `json:"bp"`
	Visits      []VisitEntry `json:"visits"`
	LastUpdated string       `json:"lastUpdated"`
}

// BPPoint is one reading in the blood-pressure series, oldest first.
type BPPoint struct {
	Date string `json:"date"`
	Sys  int    `json:"sys"`
	Dia  int    `json:"dia"`
}

// VisitEntry is one row in the visit history, newest first.
type VisitEntry struct {
	Date       string `json:"date"`
	Title      string `json:"title"`
	Avg        string `json:"avg"`
	Notes      string `json:"notes"`
	AssessedBy string `json:"assessed_by"`
}

// BuildViews reshapes stored patients and visits into view objects. It is a
// pure function over already-loaded documents so every fallback rule below is
// testable without a store.
func BuildViews(patients []Patient, visits []Visit) []View {
	views := make([]View, 0, len(patients))
	for _, p := range patients {
		views = append(views, buildView(p, visits))
	}
	return views
}

func buildView(p Patient, all []Visit) View {
	pid := IDKey(p.PatientID)

	var own []Visit
	for _, v := range all {
		if IDKey(v.PatientID) == pid {
			own = append(own, v)
		}
	}

	// Newest first. Dates are fixed-width strings, so lexical order is
	// chronological for everything this server writes.
	sort.SliceStable(own, func(i, j int) bool {
		return own[i].VisitDate > own[j].VisitDate
	})

	bp := make([]BPPoint, 0)
	for i := len(own) - 1; i >= 0; i-- {
		v := own[i]
		if v.BloodPressure.Sys != 0 {
			bp = append(bp, BPPoint{
				Date: displayDate(v.VisitDate),
				Sys:  v.BloodPressure.Sys,
				Dia:  v.BloodPressure.Dia,
			})
		}
	}

	entries := make([]VisitEntry, 0, len(own))
	for _, v := range own {
		entries = append(entries, VisitEntry{
			Date:       displayDate(v.VisitDate),
			Title:      orDefault(v.VisitType, "Visit"),
			Avg:        DisplayAvg(v.BloodPressure),
			Notes:      visitNotes(v),
			AssessedBy: orDefault(v.AssessedBy, "Unknown"),
		})
	}

	first, last := p.FirstName, p.LastName
	if first == "" || last == "" {
		sf, sl := SplitName(p.Name)
		if first == "" {
			first = sf
		}
		if last == "" {
			last = sl
		}
	}

	home := p.HomeAddress
	if home == "" {
		home = p.Address
	}

	lastUpdated := p.LastUpdated
	if lastUpdated == "" {
		if len(own) > 0 {
			lastUpdated = own[0].VisitDate
		}
		if lastUpdated == "" {
			lastUpdated = "New"
		}
	}

	return View{
		ID:          pid,
		FirstName:   first,
		MiddleName:  p.MiddleName,
		LastName:    last,
		Age:         p.Age,
		Sex:         orDefault(p.Sex, "Unknown"),
		Civil:       orDefault(p.CivilStatus, "Unknown"),
		HomeAddress: orDefault(home, "Unknown"),
		Purok:       p.Purok,
		Height:      p.Height,
		Weight:      p.Weight,
		Contact:     p.Contact,
		Status:      orDefault(p.Status, "Active"),
		Notes:       p.Notes,
		BP:          bp,
		Visits:      entries,
		LastUpdated: lastUpdated,
	}
}

// IDKey coerces a caller-supplied identifier to its comparable string form.
// Legacy documents hold numeric ids; JSON decodes numbers as float64.
func IDKey(v interface{}) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return strconv.FormatInt(int64(n), 10)
		}
		return strconv.FormatFloat(n, 'f', -1, 64)
	case int32:
		return strconv.FormatInt(int64(n), 10)
	case int64:
		return strconv.FormatInt(n, 10)
	case int:
		return strconv.Itoa(n)
	default:
		return fmt.Sprint(n)
	}
}

// SplitName mines a combined "name" field for structured name parts: first
// token is the first name, the remainder is the last name. An empty name
// yields the Unknown placeholder.
func SplitName(full string) (first, last string) {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return "Unknown", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

// DisplayAvg picks the displayed blood-pressure average: the stored average
// string when present, a synthesized "sys/dia" when a systolic reading
// exists, otherwise "N/A".
func DisplayAvg(bp BloodPressure) string {
	if bp.Avg != "" {
		return bp.Avg
	}
	if bp.Sys != 0 {
		return fmt.Sprintf("%d/%d", bp.Sys, bp.Dia)
	}
	return "N/A"
}

func visitNotes(v Visit) string {
	if v.Notes != "" {
		return v.Notes
	}
	return v.Details
}

func displayDate(date string) string {
	if date == "" {
		return "Unknown"
	}
	return date
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
