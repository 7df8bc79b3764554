package models

// ChatSession carries the per-relationship chat bookkeeping: one unread counter
// per party, the running message count, and the derived conversation stage.
// PartyA is always the lower person id (the RelationshipID normalization), so a
// party's counter slot is derivable from the key alone.
type ChatSession struct {
	RelationshipID string `dynamodbav:"relationshipId" json:"relationshipId"` // Partition key
	PartyA         string `dynamodbav:"partyA" json:"partyA"`                 // GSI partyA-index
	PartyB         string `dynamodbav:"partyB" json:"partyB"`                 // GSI partyB-index
	UnreadA        int    `dynamodbav:"unreadA" json:"unreadA"`
	UnreadB        int    `dynamodbav:"unreadB" json:"unreadB"`
	MessageCount   int    `dynamodbav:"messageCount" json:"messageCount"`
	Stage          string `dynamodbav:"stage" json:"stage"`
	LastMessageAt  string `dynamodbav:"lastMessageAt,omitempty" json:"lastMessageAt,omitempty"`
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"`
}

// ChatSessionsTable is the DynamoDB table name for chat sessions
const ChatSessionsTable = "ChatSessions"

// GSI names for per-person session rollups (unread counts across relationships)
const (
	PartyAIndex = "partyA-index"
	PartyBIndex = "partyB-index"
)

// UnreadFor returns the unread counter belonging to personID.
func (s *ChatSession) UnreadFor(personID string) int {
	if personID == s.PartyA {
		return s.UnreadA
	}
	if personID == s.PartyB {
		return s.UnreadB
	}
	return 0
}
