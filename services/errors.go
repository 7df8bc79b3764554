package services

import "fmt"

// The closed error taxonomy shared by every service. Controllers translate these
// to transport status codes; services never return ad hoc error strings for
// caller mistakes.

// NotFoundError - referenced person, meeting, or relationship does not exist
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ForbiddenError - caller is not a party, or the action is reserved for the other party
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return e.Reason
}

// ValidationError - malformed input (self-interest, bad coordinates, empty/overlong message)
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ChatNotEnabledError - chat requires mutual interest, which is absent
type ChatNotEnabledError struct {
	RelationshipID string
}

func (e *ChatNotEnabledError) Error() string {
	return fmt.Sprintf("chat is not enabled for relationship %s: mutual interest required", e.RelationshipID)
}

// ConflictError - state-machine transition attempted from an incompatible status
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}
