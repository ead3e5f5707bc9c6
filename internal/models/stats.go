package models

// EmployeeStats is the progress projection shown on the employee dashboard
type EmployeeStats struct {
	UserID              int64 `json:"user_id"`
	Level               int   `json:"level"`
	XPCurrent           int   `json:"xp_current"`
	XPTotal             int   `json:"xp_total"`
	ChallengesCompleted int   `json:"challenges_completed"`
}
