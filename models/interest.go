package models

// InterestEdge is a directional "interested in" record. At most one edge exists
// per ordered pair; mutuality is derived from the presence of both directions.
type InterestEdge struct {
	PK        string `dynamodbav:"PK" json:"-"` // USER#<fromId>
	SK        string `dynamodbav:"SK" json:"-"` // INTEREST#<toId>
	FromID    string `dynamodbav:"fromId" json:"fromId"`
	ToID      string `dynamodbav:"toId" json:"toId"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// InterestsTable is the DynamoDB table name for interest edges
const InterestsTable = "Interests"

// InterestEdgePK builds the partition key for all edges leaving fromID.
func InterestEdgePK(fromID string) string { return "USER#" + fromID }

// InterestEdgeSK builds the sort key for the edge toward toID.
func InterestEdgeSK(toID string) string { return "INTEREST#" + toID }
