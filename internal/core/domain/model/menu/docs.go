// Package menu models what a customer can order: dishes, the customization
// groups attached to them and the normalized snapshot of a customer's choices.
//
// The package includes:
//   - Dish: a purchasable item with a base price and ordered customization groups
//   - CustomizationGroup: a titled set of choices, single- or multi-select, optionally required
//   - Choice: one selectable option with a non-negative price delta
//   - Selections: raw customer input keyed by group id
//   - Customization: the resolved, ordered snapshot stored on a cart line item
//
// Menu values are immutable once constructed. Resolution of Selections into a
// Customization lives in the services package.
package menu
