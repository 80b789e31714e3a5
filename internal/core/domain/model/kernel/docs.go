// Package kernel provides the shared value objects of the storefront domain.
//
// The package includes:
//   - UUID: identifiers for carts, line items and orders
//   - Money: a non-negative, two-decimal monetary amount
//   - TaxRate: a fraction in [0, 1] applied to a subtotal
//
// All values are immutable. Zero values of UUID are invalid and rejected by
// Validate; the zero Money is a valid amount of 0.00.
package kernel
