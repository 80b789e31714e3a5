// Package cart implements the Cart aggregate root: the in-session collection of
// line items a customer intends to order.
//
// Key business rules:
//   - Quantities are integers of at least 1; lower requests are clamped to 1
//   - Adding a dish whose id and customization match an existing line increments
//     that line instead of appending a new one
//   - Removing an absent line is a no-op
//   - Every effective mutation bumps the cart version so subscribers can tell
//     a change happened
package cart
