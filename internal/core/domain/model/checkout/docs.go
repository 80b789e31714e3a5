// Package checkout implements the multi-step checkout wizard.
//
// The wizard walks a single Form through three steps (Address, Payment,
// Review). Each step owns a fixed list of form fields; moving forward
// validates only the current step's fields, moving back never validates and
// never clears data. Submission is a sub-state of the Review step:
//
//	Idle ──BeginSubmit──> Submitting ──CompleteSubmit──> Succeeded
//	 ^                        │
//	 └────── Failed <─FailSubmit
//
// Validation rules live on the Form as struct tags and are evaluated by a
// FormValidator, so the aggregate stays free of validation plumbing.
package checkout
