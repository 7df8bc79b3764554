package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"skillswap_server/models"
	"skillswap_server/utils"

	"github.com/google/uuid"
)

// ReplyTrigger is notified after a real person's message is stored, so a
// simulated counterpart can schedule a delayed reply.
type ReplyTrigger interface {
	TriggerReply(relationshipID, recipientID string)
}

// ChatService is the gated message surface. Every operation re-reads by id and
// validates party membership; mutual interest is required before anything flows.
type ChatService struct {
	Directory PersonDirectory
	Ledger    *InterestService
	Chats     ChatStore
	Clock     Clock
	Simulator ReplyTrigger // optional, wired in main
}

// contentEscaper neutralizes only the angle brackets; everything else is stored verbatim.
var contentEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// DetermineStage derives the conversation stage from the total message count.
func DetermineStage(messageCount int) string {
	switch {
	case messageCount < 3:
		return models.StageGreeting
	case messageCount <= 6:
		return models.StageSkillDiscussion
	case messageCount <= 10:
		return models.StageMeetingCoordination
	default:
		return models.StageBusyResponse
	}
}

// IsEnabled reports whether chat is open for the pair (mutual interest).
func (s *ChatService) IsEnabled(ctx context.Context, relationshipID string) (bool, error) {
	rel, err := models.ParseRelationshipID(relationshipID)
	if err != nil {
		return false, &ValidationError{Reason: err.Error()}
	}
	return s.Ledger.HasMutualInterest(ctx, rel.PartyA(), rel.PartyB())
}

// SendMessage validates, escapes, persists, and does the unread/stage
// bookkeeping for one message. isSynthetic marks simulator-originated replies,
// which must not trigger another reply.
func (s *ChatService) SendMessage(ctx context.Context, senderID, relationshipID, content string, isSynthetic bool) (*models.Message, error) {
	rel, err := models.ParseRelationshipID(relationshipID)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	recipientID, ok := rel.OtherParty(senderID)
	if !ok {
		return nil, &ForbiddenError{Reason: "you are not a party to this relationship"}
	}

	sender, err := s.Directory.GetPerson(ctx, senderID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up person %s: %w", senderID, err)
	}
	if sender == nil {
		return nil, &NotFoundError{Resource: "person", ID: senderID}
	}

	enabled, err := s.Ledger.HasMutualInterest(ctx, rel.PartyA(), rel.PartyB())
	if err != nil {
		return nil, err
	}
	if !enabled {
		return nil, &ChatNotEnabledError{RelationshipID: rel.String()}
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, &ValidationError{Reason: "message content is required"}
	}
	// The cap counts characters as typed; escaping happens after and may store
	// a longer string.
	if utf8.RuneCountInString(content) > models.MaxMessageLength {
		return nil, &ValidationError{Reason: fmt.Sprintf("message content exceeds %d characters", models.MaxMessageLength)}
	}
	content = contentEscaper.Replace(content)

	now := utils.FormatTimestamp(s.Clock.Now())

	session, err := s.Chats.GetSession(ctx, rel.String())
	if err != nil {
		return nil, err
	}
	if session == nil {
		session = &models.ChatSession{
			RelationshipID: rel.String(),
			PartyA:         rel.PartyA(),
			PartyB:         rel.PartyB(),
			Stage:          models.StageGreeting,
			CreatedAt:      now,
		}
		if err := s.Chats.CreateSession(ctx, session); err != nil {
			return nil, fmt.Errorf("failed to create chat session: %w", err)
		}
	}

	message := &models.Message{
		RelationshipID: rel.String(),
		CreatedAt:      now,
		MessageID:      uuid.NewString(),
		SenderID:       senderID,
		RecipientID:    recipientID,
		Content:        content,
		IsUnread:       true,
		IsSynthetic:    isSynthetic,
	}

	if err := s.Chats.AppendMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}
	if err := s.Chats.RecordIncoming(ctx, rel.String(), recipientID, now); err != nil {
		return nil, fmt.Errorf("failed to update chat session: %w", err)
	}
	if err := s.AdvanceStage(ctx, rel.String()); err != nil {
		return nil, err
	}

	log.Printf("📩 Message stored for %s (%s → %s, synthetic=%v)", rel.String(), senderID, recipientID, isSynthetic)

	if !isSynthetic && s.Simulator != nil {
		s.Simulator.TriggerReply(rel.String(), recipientID)
	}

	return message, nil
}

// GetMessages returns the relationship's messages in chronological order,
// windowed by offset and limit (limit <= 0 means no cap).
func (s *ChatService) GetMessages(ctx context.Context, requesterID, relationshipID string, limit, offset int) ([]models.Message, error) {
	rel, err := s.requireParty(requesterID, relationshipID)
	if err != nil {
		return nil, err
	}

	messages, err := s.Chats.ListMessages(ctx, rel.String())
	if err != nil {
		return nil, err
	}

	if offset > len(messages) {
		offset = len(messages)
	}
	if offset > 0 {
		messages = messages[offset:]
	}
	if limit > 0 && len(messages) > limit {
		messages = messages[:limit]
	}
	return messages, nil
}

// GetMessagesSince returns messages strictly after the given timestamp, in
// order. Idempotent and monotonic, so clients can poll it safely.
func (s *ChatService) GetMessagesSince(ctx context.Context, requesterID, relationshipID, sinceTimestamp string) ([]models.Message, error) {
	rel, err := s.requireParty(requesterID, relationshipID)
	if err != nil {
		return nil, err
	}
	return s.Chats.ListMessagesSince(ctx, rel.String(), sinceTimestamp)
}

// MarkRead flips every unread message addressed to readerID and zeroes their
// unread counter, as one logical operation.
func (s *ChatService) MarkRead(ctx context.Context, readerID, relationshipID string) error {
	rel, err := s.requireParty(readerID, relationshipID)
	if err != nil {
		return err
	}

	flipped, err := s.Chats.MarkMessagesRead(ctx, rel.String(), readerID)
	if err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}
	if err := s.Chats.ResetUnread(ctx, rel.String(), readerID); err != nil {
		return fmt.Errorf("failed to reset unread counter: %w", err)
	}

	log.Printf("👀 %s read %d messages in %s", readerID, flipped, rel.String())
	return nil
}

// UnreadCount returns personID's unread counter for one relationship.
func (s *ChatService) UnreadCount(ctx context.Context, personID, relationshipID string) (int, error) {
	rel, err := s.requireParty(personID, relationshipID)
	if err != nil {
		return 0, err
	}

	session, err := s.Chats.GetSession(ctx, rel.String())
	if err != nil {
		return 0, err
	}
	if session == nil {
		return 0, nil
	}
	return session.UnreadFor(personID), nil
}

// AllUnreadCounts returns personID's non-zero unread counters keyed by relationship.
func (s *ChatService) AllUnreadCounts(ctx context.Context, personID string) (map[string]int, error) {
	sessions, err := s.Chats.ListSessionsFor(ctx, personID)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for i := range sessions {
		if n := sessions[i].UnreadFor(personID); n > 0 {
			counts[sessions[i].RelationshipID] = n
		}
	}
	return counts, nil
}

// TotalUnread sums personID's unread counters across every relationship.
func (s *ChatService) TotalUnread(ctx context.Context, personID string) (int, error) {
	counts, err := s.AllUnreadCounts(ctx, personID)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	return total, nil
}

// ConversationStage returns the pair's current stage (greeting before any message).
func (s *ChatService) ConversationStage(ctx context.Context, relationshipID string) (string, error) {
	rel, err := models.ParseRelationshipID(relationshipID)
	if err != nil {
		return "", &ValidationError{Reason: err.Error()}
	}

	session, err := s.Chats.GetSession(ctx, rel.String())
	if err != nil {
		return "", err
	}
	if session == nil {
		return models.StageGreeting, nil
	}
	return session.Stage, nil
}

// AdvanceStage re-derives the stage from the session's message count. Called
// after every send so stage and count never drift.
func (s *ChatService) AdvanceStage(ctx context.Context, relationshipID string) error {
	session, err := s.Chats.GetSession(ctx, relationshipID)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}

	stage := DetermineStage(session.MessageCount)
	if stage == session.Stage {
		return nil
	}
	return s.Chats.SetStage(ctx, relationshipID, stage)
}

func (s *ChatService) requireParty(personID, relationshipID string) (models.RelationshipID, error) {
	rel, err := models.ParseRelationshipID(relationshipID)
	if err != nil {
		return models.RelationshipID{}, &ValidationError{Reason: err.Error()}
	}
	if !rel.Involves(personID) {
		return models.RelationshipID{}, &ForbiddenError{Reason: "you are not a party to this relationship"}
	}
	return rel, nil
}
