package services

import (
	"context"
	"fmt"
	"log"

	"skillswap_server/models"
	"skillswap_server/utils"
)

// InterestService records directional interest edges and derives mutual-match
// status. Interest toward a synthetic counterpart is reciprocated synchronously
// in the same call; only chat replies are deliberately delayed.
type InterestService struct {
	Directory PersonDirectory
	Interests InterestStore
	Clock     Clock
}

// InterestResult reports the relationship key and the derived status after an
// express-interest call.
type InterestResult struct {
	RelationshipID string `json:"relationshipId"`
	Status         string `json:"status"` // pending or mutual
}

// ExpressInterest records the from→to edge. Idempotent: repeating the call never
// creates a second edge or changes status beyond recomputing mutuality.
func (s *InterestService) ExpressInterest(ctx context.Context, fromID, toID string) (*InterestResult, error) {
	if fromID == toID {
		return nil, &ValidationError{Reason: "cannot express interest in yourself"}
	}

	from, err := s.Directory.GetPerson(ctx, fromID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up person %s: %w", fromID, err)
	}
	if from == nil {
		return nil, &NotFoundError{Resource: "person", ID: fromID}
	}

	to, err := s.Directory.GetPerson(ctx, toID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up person %s: %w", toID, err)
	}
	if to == nil {
		return nil, &NotFoundError{Resource: "person", ID: toID}
	}

	now := utils.FormatTimestamp(s.Clock.Now())

	existing, err := s.Interests.GetEdge(ctx, fromID, toID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		edge := &models.InterestEdge{FromID: fromID, ToID: toID, CreatedAt: now}
		if err := s.Interests.PutEdge(ctx, edge); err != nil {
			return nil, fmt.Errorf("failed to save interest edge: %w", err)
		}
		log.Printf("💖 %s expressed interest in %s", fromID, toID)
	}

	// Synthetic counterparts reciprocate immediately; only chat replies simulate
	// thinking time.
	if to.IsSynthetic {
		reverse, err := s.Interests.GetEdge(ctx, toID, fromID)
		if err != nil {
			return nil, err
		}
		if reverse == nil {
			edge := &models.InterestEdge{FromID: toID, ToID: fromID, CreatedAt: now}
			if err := s.Interests.PutEdge(ctx, edge); err != nil {
				return nil, fmt.Errorf("failed to save reciprocal edge: %w", err)
			}
			log.Printf("🤖 Synthetic counterpart %s reciprocated interest in %s", toID, fromID)
		}
	}

	mutual, err := s.HasMutualInterest(ctx, fromID, toID)
	if err != nil {
		return nil, err
	}

	status := models.InterestStatusPending
	if mutual {
		status = models.InterestStatusMutual
	}

	return &InterestResult{
		RelationshipID: models.NewRelationshipID(fromID, toID).String(),
		Status:         status,
	}, nil
}

// Decline removes only the from→to edge; the reverse edge is untouched.
func (s *InterestService) Decline(ctx context.Context, fromID, toID string) error {
	if fromID == toID {
		return &ValidationError{Reason: "cannot decline yourself"}
	}
	if err := s.Interests.DeleteEdge(ctx, fromID, toID); err != nil {
		return fmt.Errorf("failed to remove interest edge: %w", err)
	}
	log.Printf("💔 %s declined %s", fromID, toID)
	return nil
}

// HasMutualInterest is a pure derivation: both directional edges exist.
func (s *InterestService) HasMutualInterest(ctx context.Context, aID, bID string) (bool, error) {
	forward, err := s.Interests.GetEdge(ctx, aID, bID)
	if err != nil {
		return false, err
	}
	if forward == nil {
		return false, nil
	}

	reverse, err := s.Interests.GetEdge(ctx, bID, aID)
	if err != nil {
		return false, err
	}
	return reverse != nil, nil
}

// ListInterests returns every edge leaving personID.
func (s *InterestService) ListInterests(ctx context.Context, personID string) ([]models.InterestEdge, error) {
	return s.Interests.ListEdgesFrom(ctx, personID)
}
