package metadata

import "fmt"

// Status is the stock-health classification of a calendar date.
type Status string

const (
	StatusOK     Status = "ok"
	StatusYellow Status = "yellow"
	StatusOrange Status = "orange"
	StatusRed    Status = "red"
)

func NewStatus(value string) (Status, error) {
	status := Status(value)
	if !status.isValid() {
		return "", fmt.Errorf("invalid status: %s", value)
	}
	return status, nil
}

func (s Status) isValid() bool {
	switch s {
	case StatusOK, StatusYellow, StatusOrange, StatusRed:
		return true
	default:
		return false
	}
}

// Severity orders statuses ok < yellow < orange < red.
func (s Status) Severity() int {
	switch s {
	case StatusYellow:
		return 1
	case StatusOrange:
		return 2
	case StatusRed:
		return 3
	default:
		return 0
	}
}

func (s Status) String() string {
	return string(s)
}
