package services

import (
	"context"

	"skillswap_server/models"
)

// The storage collaborators the core consumes. DynamoDB implementations live in
// the dynamo_*.go files; tests substitute in-memory fakes. Lookups return
// (nil, nil) when the row simply does not exist; absence is not an error at
// this layer.

// PersonDirectory is the profile store.
type PersonDirectory interface {
	GetPerson(ctx context.Context, personID string) (*models.Person, error)
	PutPerson(ctx context.Context, person *models.Person) error
	// ListVisiblePersons returns every real person plus the synthetic persons
	// owned by viewerID. Other owners' synthetic pools are never visible.
	ListVisiblePersons(ctx context.Context, viewerID string) ([]models.Person, error)
}

// InterestStore holds directional interest edges, at most one per ordered pair.
type InterestStore interface {
	GetEdge(ctx context.Context, fromID, toID string) (*models.InterestEdge, error)
	PutEdge(ctx context.Context, edge *models.InterestEdge) error
	DeleteEdge(ctx context.Context, fromID, toID string) error
	ListEdgesFrom(ctx context.Context, fromID string) ([]models.InterestEdge, error)
}

// MeetingStore holds at most one meeting row per relationship.
type MeetingStore interface {
	GetByRelationship(ctx context.Context, relationshipID string) (*models.Meeting, error)
	GetByMeetingID(ctx context.Context, meetingID string) (*models.Meeting, error)
	PutMeeting(ctx context.Context, meeting *models.Meeting) error
}

// ChatStore holds sessions and messages. RecordIncoming must be a single atomic
// mutation (counter increments cannot be read-modify-write split) because two
// real parties may send into the same relationship concurrently.
type ChatStore interface {
	GetSession(ctx context.Context, relationshipID string) (*models.ChatSession, error)
	CreateSession(ctx context.Context, session *models.ChatSession) error
	// RecordIncoming atomically increments the recipient's unread counter and
	// the session message count, and advances lastMessageAt.
	RecordIncoming(ctx context.Context, relationshipID, recipientID, at string) error
	SetStage(ctx context.Context, relationshipID, stage string) error
	ResetUnread(ctx context.Context, relationshipID, personID string) error
	ListSessionsFor(ctx context.Context, personID string) ([]models.ChatSession, error)

	AppendMessage(ctx context.Context, message *models.Message) error
	ListMessages(ctx context.Context, relationshipID string) ([]models.Message, error)
	ListMessagesSince(ctx context.Context, relationshipID, sinceTimestamp string) ([]models.Message, error)
	// MarkMessagesRead flips every unread message addressed to readerID and
	// returns how many were flipped.
	MarkMessagesRead(ctx context.Context, relationshipID, readerID string) (int, error)
}
