package model

// WorkflowSummary tallies patients by stage and triaged patients by priority.
type WorkflowSummary struct {
	TotalPatients int                   `json:"total_patients"`
	ByStatus      map[PatientStatus]int `json:"by_status"`
	ByPriority    map[PriorityLevel]int `json:"by_priority"`
}
