// Package services provides domain services for computations that span more
// than one aggregate or value object in the storefront.
//
// The package includes:
//   - PricingEngine: turns a snapshot of cart line items plus discount, delivery
//     fee and tax rate into a PriceBreakdown
//   - CustomizationResolver: checks a customer's raw selections against a dish's
//     customization groups and produces the normalized Customization snapshot
//
// Both services are pure: no I/O, no shared state, the same input always gives
// the same output.
package services
