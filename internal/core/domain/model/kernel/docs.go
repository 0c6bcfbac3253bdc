// Package kernel holds the identifier value objects shared by every aggregate:
// OrderID (store-assigned, monotonic), UserID (opaque caller identity) and UUID
// (in-process generated identity for ledger rows).
package kernel
