// Package order provides the Order aggregate and the lifecycle state machine of
// work orders.
//
// The package includes:
//   - Order: identity, immutable request data (creator, line items, urgency, deadline)
//     and the current lifecycle state
//   - LineItem: a validated product/color/quantity triple
//   - Status and Operation: the explicit transition table
//     (new → in_progress → completed ⇄ archived, cancel from any non-terminal state)
//   - Transition: a compare-and-set request the store applies as one conditional update
//   - Action: identifiers rendered as buttons on push messages, legal per status
//
// Key business rules:
//   - Exactly one worker can win a claim; the loser sees a conflict
//   - Only the assigned worker can complete an order
//   - Archive, unarchive and cancel are scoped to the creator
//   - Canceled is terminal
package order
