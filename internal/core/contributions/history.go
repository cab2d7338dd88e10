package contributions

import (
	"sort"
	"time"

	"github.com/SscSPs/pension_management_app/internal/core/domain"
)

// SortField selects the ordering of a contribution history.
type SortField string

const (
	SortByDate   SortField = "date"
	SortByAmount SortField = "amount"
	SortByStatus SortField = "status"
)

// SortOrder is the direction of a history ordering.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// HistoryFilter narrows and orders a member's contribution history.
// Empty slices and nil dates mean "no restriction". From and To are inclusive days.
type HistoryFilter struct {
	Types    []domain.ContributionType
	Statuses []domain.ContributionStatus
	From     *time.Time
	To       *time.Time
	SortBy   SortField
	Order    SortOrder
}

// FilterHistory returns a new slice with the contributions matching f, ordered as f asks.
// The default ordering is newest first. Ties keep creation order.
func FilterHistory(list []domain.Contribution, f HistoryFilter) []domain.Contribution {
	out := make([]domain.Contribution, 0, len(list))
	for _, c := range list {
		if !containsType(f.Types, c.Type) || !containsStatus(f.Statuses, c.Status) {
			continue
		}
		if !withinDays(c.Date, f.From, f.To) {
			continue
		}
		out = append(out, c)
	}

	order := f.Order
	if order != Ascending {
		order = Descending
	}
	less := lessFor(f.SortBy)
	sort.SliceStable(out, func(i, j int) bool {
		if order == Ascending {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})
	return out
}

// FilterByStatus keeps contributions whose status is listed. An empty list keeps everything.
func FilterByStatus(list []domain.Contribution, statuses []domain.ContributionStatus) []domain.Contribution {
	if len(statuses) == 0 {
		return list
	}
	out := make([]domain.Contribution, 0, len(list))
	for _, c := range list {
		if containsStatus(statuses, c.Status) {
			out = append(out, c)
		}
	}
	return out
}

// FilterForStatement keeps contributions dated within the statement period whose type
// is requested, in ascending date order.
func FilterForStatement(list []domain.Contribution, f domain.StatementFilter) []domain.Contribution {
	from, to := f.StartDate, f.EndDate
	return FilterHistory(list, HistoryFilter{
		Types:  f.Types,
		From:   &from,
		To:     &to,
		SortBy: SortByDate,
		Order:  Ascending,
	})
}

func lessFor(field SortField) func(a, b domain.Contribution) bool {
	switch field {
	case SortByAmount:
		return func(a, b domain.Contribution) bool { return a.Amount.LessThan(b.Amount) }
	case SortByStatus:
		return func(a, b domain.Contribution) bool { return a.Status < b.Status }
	default:
		return func(a, b domain.Contribution) bool { return DayOf(a.Date).Before(DayOf(b.Date)) }
	}
}

func withinDays(date time.Time, from, to *time.Time) bool {
	day := DayOf(date)
	if from != nil && day.Before(DayOf(*from)) {
		return false
	}
	if to != nil && day.After(DayOf(*to)) {
		return false
	}
	return true
}

func containsType(types []domain.ContributionType, t domain.ContributionType) bool {
	if len(types) == 0 {
		return true
	}
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

func containsStatus(statuses []domain.ContributionStatus, s domain.ContributionStatus) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}
