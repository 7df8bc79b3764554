package services

import (
	"context"
	"fmt"

	"skillswap_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoMeetingStore implements MeetingStore on the Meetings table. The
// relationship id is the partition key, so there is exactly one row per pair
// and re-proposal is a plain overwrite. Lookups by meetingId go through a GSI.
type DynamoMeetingStore struct {
	Dynamo *DynamoService
}

func (d *DynamoMeetingStore) GetByRelationship(ctx context.Context, relationshipID string) (*models.Meeting, error) {
	key := map[string]types.AttributeValue{
		"relationshipId": &types.AttributeValueMemberS{Value: relationshipID},
	}

	item, err := d.Dynamo.GetItem(ctx, models.MeetingsTable, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var meeting models.Meeting
	if err := attributevalue.UnmarshalMap(item, &meeting); err != nil {
		return nil, fmt.Errorf("failed to unmarshal meeting: %w", err)
	}
	return &meeting, nil
}

func (d *DynamoMeetingStore) GetByMeetingID(ctx context.Context, meetingID string) (*models.Meeting, error) {
	keyCondition := "meetingId = :meetingId"
	expressionValues := map[string]types.AttributeValue{
		":meetingId": &types.AttributeValueMemberS{Value: meetingID},
	}

	items, err := d.Dynamo.QueryItemsWithIndex(ctx, models.MeetingsTable, models.MeetingIDIndex, keyCondition, expressionValues, nil, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to query meeting by id: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}

	var meeting models.Meeting
	if err := attributevalue.UnmarshalMap(items[0], &meeting); err != nil {
		return nil, fmt.Errorf("failed to unmarshal meeting: %w", err)
	}
	return &meeting, nil
}

func (d *DynamoMeetingStore) PutMeeting(ctx context.Context, meeting *models.Meeting) error {
	return d.Dynamo.PutItem(ctx, models.MeetingsTable, meeting)
}
