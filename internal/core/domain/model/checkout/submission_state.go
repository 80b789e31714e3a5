package checkout

// SubmissionState tracks the order placement attempt made from ReviewStep.
type SubmissionState int

const (
	// Idle means no placement attempt is running or has succeeded.
	Idle SubmissionState = iota

	// Submitting means an order is being placed; the wizard is locked.
	Submitting

	// Failed means the last attempt failed; the customer may retry.
	Failed

	// Succeeded is final: the order was placed.
	Succeeded
)

func getSubmissionStateStrings() map[SubmissionState]string {
	return map[SubmissionState]string{
		Idle:       "Idle",
		Submitting: "Submitting",
		Failed:     "Failed",
		Succeeded:  "Succeeded",
	}
}

func (s SubmissionState) String() string {
	if str, ok := getSubmissionStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsLocked reports whether form edits and navigation are refused.
func (s SubmissionState) IsLocked() bool {
	return s == Submitting || s == Succeeded
}
