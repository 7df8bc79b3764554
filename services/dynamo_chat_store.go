package services

import (
	"context"
	"fmt"
	"log"

	"skillswap_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoChatStore implements ChatStore on the ChatSessions and Messages tables.
// Messages are keyed relationshipId + createdAt, so a plain query returns them
// in chronological order.
type DynamoChatStore struct {
	Dynamo *DynamoService
}

func sessionKey(relationshipID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"relationshipId": &types.AttributeValueMemberS{Value: relationshipID},
	}
}

func (d *DynamoChatStore) GetSession(ctx context.Context, relationshipID string) (*models.ChatSession, error) {
	item, err := d.Dynamo.GetItem(ctx, models.ChatSessionsTable, sessionKey(relationshipID))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var session models.ChatSession
	if err := attributevalue.UnmarshalMap(item, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chat session: %w", err)
	}
	return &session, nil
}

func (d *DynamoChatStore) CreateSession(ctx context.Context, session *models.ChatSession) error {
	return d.Dynamo.PutItem(ctx, models.ChatSessionsTable, session)
}

// RecordIncoming bumps the recipient's unread counter and the message count in
// one UpdateItem, so concurrent senders cannot lose increments. PartyA is always
// the lower person id, so the counter slot falls out of the relationship id.
func (d *DynamoChatStore) RecordIncoming(ctx context.Context, relationshipID, recipientID, at string) error {
	rel, err := models.ParseRelationshipID(relationshipID)
	if err != nil {
		return err
	}

	counter := "unreadB"
	if recipientID == rel.PartyA() {
		counter = "unreadA"
	}

	updateExpression := "ADD #counter :one, #count :one SET #last = :at"
	expressionValues := map[string]types.AttributeValue{
		":one": &types.AttributeValueMemberN{Value: "1"},
		":at":  &types.AttributeValueMemberS{Value: at},
	}
	expressionNames := map[string]string{
		"#counter": counter,
		"#count":   "messageCount",
		"#last":    "lastMessageAt",
	}

	_, err = d.Dynamo.UpdateItem(ctx, models.ChatSessionsTable, updateExpression, sessionKey(relationshipID), expressionValues, expressionNames)
	return err
}

func (d *DynamoChatStore) SetStage(ctx context.Context, relationshipID, stage string) error {
	updateExpression := "SET #stage = :stage"
	expressionValues := map[string]types.AttributeValue{
		":stage": &types.AttributeValueMemberS{Value: stage},
	}
	expressionNames := map[string]string{"#stage": "stage"}

	_, err := d.Dynamo.UpdateItem(ctx, models.ChatSessionsTable, updateExpression, sessionKey(relationshipID), expressionValues, expressionNames)
	return err
}

func (d *DynamoChatStore) ResetUnread(ctx context.Context, relationshipID, personID string) error {
	rel, err := models.ParseRelationshipID(relationshipID)
	if err != nil {
		return err
	}

	counter := "unreadB"
	if personID == rel.PartyA() {
		counter = "unreadA"
	}

	updateExpression := "SET #counter = :zero"
	expressionValues := map[string]types.AttributeValue{
		":zero": &types.AttributeValueMemberN{Value: "0"},
	}
	expressionNames := map[string]string{"#counter": counter}

	_, err = d.Dynamo.UpdateItem(ctx, models.ChatSessionsTable, updateExpression, sessionKey(relationshipID), expressionValues, expressionNames)
	return err
}

// ListSessionsFor queries both party GSIs; a person can sit on either side of a
// relationship id depending on how their id sorts.
func (d *DynamoChatStore) ListSessionsFor(ctx context.Context, personID string) ([]models.ChatSession, error) {
	var sessions []models.ChatSession

	for _, q := range []struct {
		index string
		attr  string
	}{
		{models.PartyAIndex, "partyA"},
		{models.PartyBIndex, "partyB"},
	} {
		keyCondition := q.attr + " = :person"
		expressionValues := map[string]types.AttributeValue{
			":person": &types.AttributeValueMemberS{Value: personID},
		}

		items, err := d.Dynamo.QueryItemsWithIndex(ctx, models.ChatSessionsTable, q.index, keyCondition, expressionValues, nil, 100)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch sessions for %s: %w", personID, err)
		}

		var page []models.ChatSession
		if err := attributevalue.UnmarshalListOfMaps(items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sessions: %w", err)
		}
		sessions = append(sessions, page...)
	}

	return sessions, nil
}

func (d *DynamoChatStore) AppendMessage(ctx context.Context, message *models.Message) error {
	return d.Dynamo.PutItem(ctx, models.MessagesTable, message)
}

func (d *DynamoChatStore) ListMessages(ctx context.Context, relationshipID string) ([]models.Message, error) {
	keyCondition := "relationshipId = :rel"
	expressionValues := map[string]types.AttributeValue{
		":rel": &types.AttributeValueMemberS{Value: relationshipID},
	}

	items, err := d.Dynamo.QueryItems(ctx, models.MessagesTable, keyCondition, expressionValues, nil, 1000)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal messages: %w", err)
	}
	return messages, nil
}

func (d *DynamoChatStore) ListMessagesSince(ctx context.Context, relationshipID, sinceTimestamp string) ([]models.Message, error) {
	keyCondition := "relationshipId = :rel AND createdAt > :since"
	expressionValues := map[string]types.AttributeValue{
		":rel":   &types.AttributeValueMemberS{Value: relationshipID},
		":since": &types.AttributeValueMemberS{Value: sinceTimestamp},
	}

	items, err := d.Dynamo.QueryItems(ctx, models.MessagesTable, keyCondition, expressionValues, nil, 1000)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages since %s: %w", sinceTimestamp, err)
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal messages: %w", err)
	}
	return messages, nil
}

// MarkMessagesRead sweeps the relationship's messages and flips the unread flag
// on each one addressed to readerID.
func (d *DynamoChatStore) MarkMessagesRead(ctx context.Context, relationshipID, readerID string) (int, error) {
	messages, err := d.ListMessages(ctx, relationshipID)
	if err != nil {
		return 0, err
	}

	flipped := 0
	for _, message := range messages {
		if message.RecipientID != readerID || !message.IsUnread {
			continue
		}

		key := map[string]types.AttributeValue{
			"relationshipId": &types.AttributeValueMemberS{Value: message.RelationshipID},
			"createdAt":      &types.AttributeValueMemberS{Value: message.CreatedAt},
		}
		updateExpression := "SET isUnread = :false"
		expressionValues := map[string]types.AttributeValue{
			":false": &types.AttributeValueMemberBOOL{Value: false},
		}

		if _, err := d.Dynamo.UpdateItem(ctx, models.MessagesTable, updateExpression, key, expressionValues, nil); err != nil {
			log.Printf("❌ Failed to mark message %s as read: %v", message.MessageID, err)
			return flipped, err
		}
		flipped++
	}

	return flipped, nil
}
