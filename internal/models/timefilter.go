package models

// TimeFilter names a relative date range used to bound message retrieval.
// Only the lower bound is derived from a filter; there is no upper bound,
// so "yesterday" and "last month" include everything from their start date
// through the present moment.
type TimeFilter string

const (
	FilterToday     TimeFilter = "today"
	FilterYesterday TimeFilter = "yesterday"
	FilterLast7Days TimeFilter = "last7days"
	FilterThisMonth TimeFilter = "thismonth"
	FilterLastMonth TimeFilter = "lastmonth"
)

// ParseTimeFilter maps a user-supplied name to a TimeFilter.
// Unknown names report ok=false.
func ParseTimeFilter(s string) (TimeFilter, bool) {
	switch TimeFilter(s) {
	case FilterToday, FilterYesterday, FilterLast7Days, FilterThisMonth, FilterLastMonth:
		return TimeFilter(s), true
	}
	return "", false
}
