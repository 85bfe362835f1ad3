package mondrian

// DefaultDateHierarchies returns the hierarchy templates used for date
// dimensions: calendar year/quarter/month/day and ISO year/week/day
// drill-downs over a shared time.day table keyed by YYYYMMDD integers.
func DefaultDateHierarchies() []*Hierarchy {
	return []*Hierarchy{
		{
			Name:  "By month",
			Table: &Table{Schema: "time", Name: "day"},
			Levels: []*Level{
				{Name: "Year", Column: "year_id", NameColumn: "year_name",
					Type: "Integer", LevelType: "TimeYears", UniqueMembers: true},
				{Name: "Quarter", Column: "quarter_id", NameColumn: "quarter_name",
					Type: "Integer", LevelType: "TimeQuarters", UniqueMembers: true},
				{Name: "Month", Column: "month_id", NameColumn: "month_name",
					Type: "Integer", LevelType: "TimeMonths", UniqueMembers: true},
				{Name: "Day", Column: "day_id", NameColumn: "day_name",
					Type: "Integer", LevelType: "TimeDays", UniqueMembers: true},
			},
		},
		{
			Name:  "By week",
			Table: &Table{Schema: "time", Name: "day"},
			Levels: []*Level{
				{Name: "Year", Column: "iso_year_id",
					Type: "Integer", LevelType: "TimeYears", UniqueMembers: true},
				{Name: "Week", Column: "week_id", NameColumn: "week_name",
					Type: "Integer", LevelType: "TimeWeeks", UniqueMembers: true},
				{Name: "Day", Column: "day_id", NameColumn: "day_name",
					Type: "Integer", LevelType: "TimeDays", UniqueMembers: true},
			},
		},
	}
}

// DefaultDurationHierarchies returns the hierarchy templates used for
// duration dimensions: month-based and week-based drill-downs over a
// shared time.duration table keyed by day counts.
func DefaultDurationHierarchies() []*Hierarchy {
	return []*Hierarchy{
		{
			Name:  "By month",
			Table: &Table{Schema: "time", Name: "duration"},
			Levels: []*Level{
				{Name: "Days", Column: "days", NameColumn: "days_name",
					Type: "Integer", UniqueMembers: true},
				{Name: "Months", Column: "months", NameColumn: "months_name",
					Type: "Integer", UniqueMembers: true},
				{Name: "Half years", Column: "half_years", NameColumn: "half_years_name",
					Type: "Integer", UniqueMembers: true},
				{Name: "Years", Column: "years", NameColumn: "years_name",
					Type: "Integer", UniqueMembers: true},
			},
		},
		{
			Name:  "By week",
			Table: &Table{Schema: "time", Name: "duration"},
			Levels: []*Level{
				{Name: "Days", Column: "days", NameColumn: "days_name",
					Type: "Integer", UniqueMembers: true},
				{Name: "Weeks", Column: "weeks", NameColumn: "weeks_name",
					Type: "Integer", UniqueMembers: true},
				{Name: "Four weeks", Column: "four_weeks", NameColumn: "four_weeks_name",
					Type: "Integer", UniqueMembers: true},
				{Name: "Years", Column: "years", NameColumn: "years_name",
					Type: "Integer", UniqueMembers: true},
			},
		},
	}
}
