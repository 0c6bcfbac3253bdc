// Package services holds domain rules that do not belong to a single aggregate.
//
// The package includes:
//   - ArchivePolicy: who, besides housekeeping, may archive a completed order
package services
