package services

import (
	"context"
	"fmt"
	"log"

	"skillswap_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoPersonDirectory implements PersonDirectory on the Persons table.
type DynamoPersonDirectory struct {
	Dynamo *DynamoService
}

func (d *DynamoPersonDirectory) GetPerson(ctx context.Context, personID string) (*models.Person, error) {
	key := map[string]types.AttributeValue{
		"personId": &types.AttributeValueMemberS{Value: personID},
	}

	item, err := d.Dynamo.GetItem(ctx, models.PersonsTable, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var person models.Person
	if err := attributevalue.UnmarshalMap(item, &person); err != nil {
		return nil, fmt.Errorf("failed to unmarshal person: %w", err)
	}
	return &person, nil
}

func (d *DynamoPersonDirectory) PutPerson(ctx context.Context, person *models.Person) error {
	if err := d.Dynamo.PutItem(ctx, models.PersonsTable, person); err != nil {
		log.Printf("❌ Failed to save person %s: %v", person.PersonID, err)
		return err
	}
	return nil
}

// ListVisiblePersons returns all real persons plus viewerID's own synthetic pool.
func (d *DynamoPersonDirectory) ListVisiblePersons(ctx context.Context, viewerID string) ([]models.Person, error) {
	items, err := d.Dynamo.ScanItems(ctx, models.PersonsTable)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch persons: %w", err)
	}

	var all []models.Person
	if err := attributevalue.UnmarshalListOfMaps(items, &all); err != nil {
		return nil, fmt.Errorf("failed to unmarshal persons: %w", err)
	}

	visible := make([]models.Person, 0, len(all))
	for _, p := range all {
		if p.IsSynthetic && p.OwnerID != viewerID {
			continue
		}
		visible = append(visible, p)
	}
	return visible, nil
}
