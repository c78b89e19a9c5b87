// Package models defines the core domain models for the expense tracker.
//
// # Ownership
//
// Expense exclusively owns its ExpenseSplit rows: splits are created and
// destroyed atomically with their parent expense, and an expense is never
// persisted with zero splits. Group exclusively owns its GroupMember rows
// and, transitively, every Expense carrying its GroupID.
//
// # Participants
//
// Split targets are polymorphic: a registered User, or a "virtual" group
// member who has no account and is identified only by name. The Participant
// type encodes this as a tagged variant so that "both set" or "both empty"
// is unrepresentable.
//
// # Design principles
//
//  1. IDs are UUID strings; timestamps are Unix seconds.
//  2. Models carry no storage or transport concerns.
//  3. Relationships use ID strings instead of pointers to avoid cycles.
package models
