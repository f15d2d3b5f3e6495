package enums

import "fmt"

// ApplicationStatus tracks a lead application through staff follow-up.
type ApplicationStatus string

const (
	ApplicationStatusNew        ApplicationStatus = "new"
	ApplicationStatusInProgress ApplicationStatus = "in_progress"
	ApplicationStatusCompleted  ApplicationStatus = "completed"
	ApplicationStatusRejected   ApplicationStatus = "rejected"
)

var allApplicationStatuses = []ApplicationStatus{
	ApplicationStatusNew,
	ApplicationStatusInProgress,
	ApplicationStatusCompleted,
	ApplicationStatusRejected,
}

func (s ApplicationStatus) IsValid() bool {
	for _, candidate := range allApplicationStatuses {
		if s == candidate {
			return true
		}
	}
	return false
}

func (s ApplicationStatus) String() string {
	return string(s)
}

// ParseApplicationStatus validates a raw string against the status enum.
func ParseApplicationStatus(raw string) (ApplicationStatus, error) {
	status := ApplicationStatus(raw)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid application status %q", raw)
	}
	return status, nil
}

// ApplicationStatuses returns every status in stats/reporting order.
func ApplicationStatuses() []ApplicationStatus {
	return append([]ApplicationStatus(nil), allApplicationStatuses...)
}
