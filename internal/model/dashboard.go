package model

// DashboardCounts are the headline numbers of the dashboard.
type DashboardCounts struct {
	TotalUploads         int `json:"total_uploads"`
	TotalStudents        int `json:"total_students"`
	TotalColleges        int `json:"total_colleges"`
	TotalSpecializations int `json:"total_specializations"`
}

// DashboardSummary is the response of the dashboard endpoint.
type DashboardSummary struct {
	DashboardCounts
	RecentUploads []Upload `json:"recent_uploads"`
}
