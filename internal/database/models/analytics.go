package models

// AnalyticsOverview is the headline numbers of the admin dashboard
type AnalyticsOverview struct {
	ActiveProjects  int64 `json:"activeProjects"`
	TrashedProjects int64 `json:"trashedProjects"`
	Students        int64 `json:"students"`
	Admins          int64 `json:"admins"`
	SavedProjects   int64 `json:"savedProjects"`
	RecentProjects  int64 `json:"recentProjects"`
}

// FieldCount is the number of active projects in one field
type FieldCount struct {
	Field string `json:"field"`
	Count int64  `json:"count"`
}

// YearCount is the number of active projects in one year
type YearCount struct {
	Year  int   `json:"year"`
	Count int64 `json:"count"`
}

// SavedCount is how many bookmarks an active project has
type SavedCount struct {
	ProjectID uint   `json:"projectId"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Field     string `json:"field"`
	Year      int    `json:"year"`
	Count     int64  `json:"count"`
}
