// Package notification models the notification ledger: which push messages are
// outstanding for an order, grouped by lifecycle class, so they can be retracted
// or replaced when the order moves on.
package notification
