// Package kernel holds the value objects shared by every aggregate of the order domain.
//
//   - UUID: identifier of orders, members and products
//   - Money: decimal amount with two-place precision, used for frozen order totals
//
// Values are immutable and validated on construction; zero values fail Validate.
package kernel
