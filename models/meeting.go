package models

// Meeting is the single proposal record for a relationship. Re-proposing while
// still in `proposed` mutates this row in place; there is never a second row.
type Meeting struct {
	RelationshipID string `dynamodbav:"relationshipId" json:"relationshipId"` // Partition key
	MeetingID      string `dynamodbav:"meetingId" json:"meetingId"`           // Queried via GSI
	PartyA         string `dynamodbav:"partyA" json:"partyA"`
	PartyB         string `dynamodbav:"partyB" json:"partyB"`
	Location       string `dynamodbav:"location" json:"location"`
	Date           string `dynamodbav:"date" json:"date"`
	Time           string `dynamodbav:"time" json:"time"`
	ProposedBy     string `dynamodbav:"proposedBy" json:"proposedBy"`
	Status         string `dynamodbav:"status" json:"status"`
	ConfirmedA     bool   `dynamodbav:"confirmedA" json:"confirmedA"`
	ConfirmedB     bool   `dynamodbav:"confirmedB" json:"confirmedB"`
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"`
	LastUpdated    string `dynamodbav:"lastUpdated" json:"lastUpdated"`
}

// MeetingsTable is the DynamoDB table name for meetings
const MeetingsTable = "Meetings"

// MeetingIDIndex is the GSI for lookups by meetingId
const MeetingIDIndex = "meetingId-index"

// IsParty reports whether personID is one of the two meeting parties.
func (m *Meeting) IsParty(personID string) bool {
	return personID == m.PartyA || personID == m.PartyB
}

// ConfirmedBy reports whether the given party has confirmed the meeting happened.
func (m *Meeting) ConfirmedBy(personID string) bool {
	if personID == m.PartyA {
		return m.ConfirmedA
	}
	if personID == m.PartyB {
		return m.ConfirmedB
	}
	return false
}

// SetConfirmed flips the confirmation flag belonging to personID.
func (m *Meeting) SetConfirmed(personID string) {
	if personID == m.PartyA {
		m.ConfirmedA = true
	}
	if personID == m.PartyB {
		m.ConfirmedB = true
	}
}

// BothConfirmed reports whether both parties have confirmed.
func (m *Meeting) BothConfirmed() bool {
	return m.ConfirmedA && m.ConfirmedB
}
