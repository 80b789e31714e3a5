// Package tracking implements the Tracking aggregate: the delivery progress of
// a placed order, advanced one stage at a time on a timer.
//
// The package includes:
//   - Tracking: the aggregate root owning stages, current stage index and timestamps
//   - Stage: a named milestone with a progress percentage
//   - Status: InProgress, Delivered or Cancelled
//   - Event: lifecycle notifications raised by the aggregate
//
// Key business rules:
//   - The current stage index starts at 0, never decreases and moves by exactly one per advance
//   - Reaching the last stage marks the order Delivered and records deliveredAt once
//   - Delivered and Cancelled trackings never advance again
//   - Progress percentages never decrease along the stage list
package tracking
