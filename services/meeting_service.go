package services

import (
	"context"
	"fmt"
	"log"

	"skillswap_server/models"
	"skillswap_server/utils"

	"github.com/google/uuid"
)

// MeetingService runs the proposal/accept/confirm state machine that gates
// "swap unlocked". Status only moves forward: proposed → scheduled → completed.
// Re-proposing is an in-place overwrite while still `proposed` and a conflict
// afterwards; regressing a scheduled or completed meeting is never possible.
type MeetingService struct {
	Directory PersonDirectory
	Meetings  MeetingStore
	Ledger    *InterestService
	Clock     Clock
}

// Propose creates or overwrites the pair's meeting. Requires mutual interest.
// If the other party is synthetic the meeting is scheduled immediately.
func (s *MeetingService) Propose(ctx context.Context, proposerID, relationshipID, location, date, timeOfDay string) (*models.Meeting, error) {
	rel, err := models.ParseRelationshipID(relationshipID)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	otherID, ok := rel.OtherParty(proposerID)
	if !ok {
		return nil, &ForbiddenError{Reason: "you are not a party to this relationship"}
	}

	if location == "" || date == "" || timeOfDay == "" {
		return nil, &ValidationError{Reason: "location, date and time are required"}
	}

	mutual, err := s.Ledger.HasMutualInterest(ctx, proposerID, otherID)
	if err != nil {
		return nil, err
	}
	if !mutual {
		return nil, &ForbiddenError{Reason: "meetings require mutual interest"}
	}

	other, err := s.Directory.GetPerson(ctx, otherID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up person %s: %w", otherID, err)
	}
	if other == nil {
		return nil, &NotFoundError{Resource: "person", ID: otherID}
	}

	now := utils.FormatTimestamp(s.Clock.Now())

	meeting, err := s.Meetings.GetByRelationship(ctx, rel.String())
	if err != nil {
		return nil, err
	}

	if meeting != nil && meeting.Status != models.MeetingStatusProposed {
		return nil, &ConflictError{Reason: fmt.Sprintf("meeting is already %s; it cannot be re-proposed", meeting.Status)}
	}

	if meeting == nil {
		meeting = &models.Meeting{
			RelationshipID: rel.String(),
			MeetingID:      uuid.NewString(),
			PartyA:         rel.PartyA(),
			PartyB:         rel.PartyB(),
			CreatedAt:      now,
		}
	}

	meeting.Location = location
	meeting.Date = date
	meeting.Time = timeOfDay
	meeting.ProposedBy = proposerID
	meeting.LastUpdated = now

	// Synthetic counterparts accept on the spot.
	meeting.Status = models.MeetingStatusProposed
	if other.IsSynthetic {
		meeting.Status = models.MeetingStatusScheduled
	}

	if err := s.Meetings.PutMeeting(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to save meeting: %w", err)
	}

	log.Printf("📅 %s proposed a meeting for %s at %s (%s %s), status: %s",
		proposerID, rel.String(), location, date, timeOfDay, meeting.Status)
	return meeting, nil
}

// Accept moves the meeting from proposed to scheduled. Only the non-proposing
// party may accept; accepting an already-scheduled meeting is a safe no-op.
func (s *MeetingService) Accept(ctx context.Context, accepterID, meetingID string) (*models.Meeting, error) {
	meeting, err := s.Meetings.GetByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if meeting == nil {
		return nil, &NotFoundError{Resource: "meeting", ID: meetingID}
	}

	if !meeting.IsParty(accepterID) {
		return nil, &ForbiddenError{Reason: "you are not a party to this meeting"}
	}
	if accepterID == meeting.ProposedBy {
		return nil, &ValidationError{Reason: "you cannot accept your own proposal"}
	}

	if meeting.Status != models.MeetingStatusProposed {
		return meeting, nil
	}

	meeting.Status = models.MeetingStatusScheduled
	meeting.LastUpdated = utils.FormatTimestamp(s.Clock.Now())

	if err := s.Meetings.PutMeeting(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to save meeting: %w", err)
	}

	log.Printf("✅ %s accepted meeting %s", accepterID, meetingID)
	return meeting, nil
}

// Confirm sets the confirmer's happened-flag on a scheduled meeting. When the
// other party is synthetic their flag is set in the same call. Returns whether
// both flags are now set (which completes the meeting). Idempotent.
func (s *MeetingService) Confirm(ctx context.Context, confirmerID, meetingID string) (bool, error) {
	meeting, err := s.Meetings.GetByMeetingID(ctx, meetingID)
	if err != nil {
		return false, err
	}
	if meeting == nil {
		return false, &NotFoundError{Resource: "meeting", ID: meetingID}
	}

	if !meeting.IsParty(confirmerID) {
		return false, &ForbiddenError{Reason: "you are not a party to this meeting"}
	}
	if meeting.Status == models.MeetingStatusProposed {
		return false, &ConflictError{Reason: "meeting has not been accepted yet"}
	}

	meeting.SetConfirmed(confirmerID)

	otherID, _ := models.NewRelationshipID(meeting.PartyA, meeting.PartyB).OtherParty(confirmerID)
	other, err := s.Directory.GetPerson(ctx, otherID)
	if err != nil {
		return false, fmt.Errorf("failed to look up person %s: %w", otherID, err)
	}
	if other != nil && other.IsSynthetic {
		meeting.SetConfirmed(otherID)
	}

	if meeting.BothConfirmed() {
		meeting.Status = models.MeetingStatusCompleted
	}
	meeting.LastUpdated = utils.FormatTimestamp(s.Clock.Now())

	if err := s.Meetings.PutMeeting(ctx, meeting); err != nil {
		return false, fmt.Errorf("failed to save meeting: %w", err)
	}

	if meeting.Status == models.MeetingStatusCompleted {
		log.Printf("🎉 Meeting %s completed, swap unlocked for %s", meetingID, meeting.RelationshipID)
	} else {
		log.Printf("☑️ %s confirmed meeting %s, waiting on the other party", confirmerID, meetingID)
	}
	return meeting.BothConfirmed(), nil
}

// GetMeeting returns the pair's meeting, if any.
func (s *MeetingService) GetMeeting(ctx context.Context, relationshipID string) (*models.Meeting, error) {
	rel, err := models.ParseRelationshipID(relationshipID)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}
	return s.Meetings.GetByRelationship(ctx, rel.String())
}

// IsSwapUnlocked reports whether the pair has a completed, dual-confirmed meeting.
func (s *MeetingService) IsSwapUnlocked(ctx context.Context, relationshipID string) (bool, error) {
	meeting, err := s.GetMeeting(ctx, relationshipID)
	if err != nil {
		return false, err
	}
	return meeting != nil && meeting.Status == models.MeetingStatusCompleted, nil
}
