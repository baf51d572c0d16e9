// Package models defines the core domain models for Splitly.
//
// # Models
//
//   - User: a person who can join groups
//   - Group: a set of members who share expenses
//   - Member: a user's membership in a group
//   - Expense: a payment made by one member, divided into per-member Splits
//   - Settlement: a direct payment between two members of a group
//   - Activity: a user-centric view over expenses and settlements
//
// # Design Principles
//
// 1. **Money is decimal**: amounts use shopspring/decimal, never float64
// 2. **Avoid circular references**: use ID strings instead of pointers for relationships
// 3. **Immutable history**: expenses are never edited once recorded
// 4. **Derived data is not stored**: balances are computed on read by the calculator package
package models
