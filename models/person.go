package models

// Person defines a profile in the skill-swap pool. Coordinates stay nil until the
// person shares a location. Synthetic persons are simulated counterparts owned by
// exactly one real person; their pool is private to that owner.
type Person struct {
	PersonID      string   `dynamodbav:"personId" json:"personId"`
	Name          string   `dynamodbav:"name" json:"name"`
	Latitude      *float64 `dynamodbav:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude     *float64 `dynamodbav:"longitude,omitempty" json:"longitude,omitempty"`
	SkillsOffered []string `dynamodbav:"skillsOffered,omitempty" json:"skillsOffered,omitempty"`
	SkillsNeeded  []string `dynamodbav:"skillsNeeded,omitempty" json:"skillsNeeded,omitempty"`
	Photos        []string `dynamodbav:"photos,omitempty" json:"photos,omitempty"`
	IsSynthetic   bool     `dynamodbav:"isSynthetic" json:"isSynthetic"`
	OwnerID       string   `dynamodbav:"ownerId,omitempty" json:"ownerId,omitempty"`
	CreatedAt     string   `dynamodbav:"createdAt" json:"createdAt"`
}

// HasCoordinates reports whether the person has shared a location.
func (p *Person) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// PersonsTable is the DynamoDB table name for profiles
const PersonsTable = "Persons"
