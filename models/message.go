package models

// Message is immutable once created except for the IsUnread flag.
type Message struct {
	RelationshipID string `dynamodbav:"relationshipId" json:"relationshipId"` // Partition key
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"`           // Sort key, fixed-width UTC
	MessageID      string `dynamodbav:"messageId" json:"messageId"`
	SenderID       string `dynamodbav:"senderId" json:"senderId"`
	RecipientID    string `dynamodbav:"recipientId" json:"recipientId"`
	Content        string `dynamodbav:"content" json:"content"`
	IsUnread       bool   `dynamodbav:"isUnread" json:"isUnread"`
	IsSynthetic    bool   `dynamodbav:"isSynthetic" json:"isSynthetic"`
}

// MessagesTable is the DynamoDB table name for chat messages
const MessagesTable = "Messages"

// MaxMessageLength caps trimmed message content, in characters as typed
// (before escaping).
const MaxMessageLength = 500
