package services

import (
	"context"
	"fmt"

	"skillswap_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoInterestStore implements InterestStore on the Interests table, keyed
// USER#<from> / INTEREST#<to>. The keyed put makes edge creation idempotent:
// re-expressing interest overwrites the same row.
type DynamoInterestStore struct {
	Dynamo *DynamoService
}

func edgeKey(fromID, toID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: models.InterestEdgePK(fromID)},
		"SK": &types.AttributeValueMemberS{Value: models.InterestEdgeSK(toID)},
	}
}

func (d *DynamoInterestStore) GetEdge(ctx context.Context, fromID, toID string) (*models.InterestEdge, error) {
	item, err := d.Dynamo.GetItem(ctx, models.InterestsTable, edgeKey(fromID, toID))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var edge models.InterestEdge
	if err := attributevalue.UnmarshalMap(item, &edge); err != nil {
		return nil, fmt.Errorf("failed to unmarshal interest edge: %w", err)
	}
	return &edge, nil
}

func (d *DynamoInterestStore) PutEdge(ctx context.Context, edge *models.InterestEdge) error {
	edge.PK = models.InterestEdgePK(edge.FromID)
	edge.SK = models.InterestEdgeSK(edge.ToID)
	return d.Dynamo.PutItem(ctx, models.InterestsTable, edge)
}

func (d *DynamoInterestStore) DeleteEdge(ctx context.Context, fromID, toID string) error {
	return d.Dynamo.DeleteItem(ctx, models.InterestsTable, edgeKey(fromID, toID))
}

func (d *DynamoInterestStore) ListEdgesFrom(ctx context.Context, fromID string) ([]models.InterestEdge, error) {
	keyCondition := "PK = :from"
	expressionValues := map[string]types.AttributeValue{
		":from": &types.AttributeValueMemberS{Value: models.InterestEdgePK(fromID)},
	}

	items, err := d.Dynamo.QueryItems(ctx, models.InterestsTable, keyCondition, expressionValues, nil, 100)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch interest edges: %w", err)
	}

	var edges []models.InterestEdge
	if err := attributevalue.UnmarshalListOfMaps(items, &edges); err != nil {
		return nil, fmt.Errorf("failed to unmarshal interest edges: %w", err)
	}
	return edges, nil
}
