package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"skillswap_server/models"
)

// DelayTier is one slice of the reply-delay distribution.
type DelayTier struct {
	Weight int // percentage, all tiers must sum to 100
	Min    time.Duration
	Max    time.Duration
}

// MaxReplyDelay bounds every tier; no simulated reply waits longer than this.
const MaxReplyDelay = 5 * time.Second

// Mostly near-instant replies, occasionally a slower one. Tuning values, not a
// contract; only the 100% sum and the MaxReplyDelay ceiling are enforced.
var defaultDelayTiers = []DelayTier{
	{Weight: 70, Min: 500 * time.Millisecond, Max: 1500 * time.Millisecond},
	{Weight: 25, Min: 1500 * time.Millisecond, Max: 3 * time.Second},
	{Weight: 5, Min: 3 * time.Second, Max: 4500 * time.Millisecond},
}

// stagePools are the canned replies per conversation stage.
var stagePools = map[string][]string{
	models.StageGreeting: {
		"Hey! Saw we matched on skills, nice to meet you 😊",
		"Hi there! Looks like we could help each other out.",
		"Hello! Thanks for reaching out, this looks promising.",
		"Hey, great to connect! Our skills line up really well.",
	},
	models.StageSkillDiscussion: {
		"I've been doing this for a few years now, happy to show you the basics.",
		"How long have you been practicing your side of the swap?",
		"I usually start beginners with a simple project, does that work for you?",
		"What are you hoping to get out of the swap, mostly fundamentals?",
		"I can bring some of my own materials if that helps.",
	},
	models.StageMeetingCoordination: {
		"Want to meet somewhere public, like a coffee shop?",
		"I'm free most evenings this week, what works for you?",
		"There's a library near me with good meeting rooms, how about there?",
		"Saturday afternoon could work on my end.",
		"Let's lock in a time, I'll put it in my calendar.",
	},
	models.StageBusyResponse: {
		"Sorry for the slow reply, busy week! Still on for the swap though.",
		"Been swamped lately, but I haven't forgotten about this.",
		"Quick reply between things, let's pick this up soon!",
		"Things are hectic on my end, I'll get back to you properly tonight.",
	},
}

// SimulatorService schedules believable delayed replies from synthetic
// counterparts. One pending reply per relationship at most; a newer inbound
// message replaces the pending one. Failures at delivery time are logged and
// dropped, never retried; nothing waits on a scheduled callback.
type SimulatorService struct {
	Directory PersonDirectory
	Chat      *ChatService
	Scheduler ReplyScheduler
	Tiers     []DelayTier

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatorService wires a simulator with the default delay distribution.
// Panics on an invalid tier table, which is a programming error.
func NewSimulatorService(directory PersonDirectory, chat *ChatService, scheduler ReplyScheduler, rng *rand.Rand) *SimulatorService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if err := ValidateDelayTiers(defaultDelayTiers); err != nil {
		panic(err)
	}
	return &SimulatorService{
		Directory: directory,
		Chat:      chat,
		Scheduler: scheduler,
		Tiers:     defaultDelayTiers,
		rng:       rng,
	}
}

// ValidateDelayTiers checks the distribution invariants: weights sum to 100 and
// every tier stays under the ceiling.
func ValidateDelayTiers(tiers []DelayTier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("delay tiers cannot be empty")
	}

	sum := 0
	for i, tier := range tiers {
		if tier.Weight <= 0 {
			return fmt.Errorf("delay tier %d has non-positive weight", i)
		}
		if tier.Min < 0 || tier.Max < tier.Min {
			return fmt.Errorf("delay tier %d has an invalid range", i)
		}
		if tier.Max > MaxReplyDelay {
			return fmt.Errorf("delay tier %d exceeds the %s ceiling", i, MaxReplyDelay)
		}
		sum += tier.Weight
	}
	if sum != 100 {
		return fmt.Errorf("delay tier weights sum to %d, want 100", sum)
	}
	return nil
}

// TriggerReply schedules a reply if the recipient is a synthetic counterpart.
// Called by ChatService after every real message is stored.
func (s *SimulatorService) TriggerReply(relationshipID, recipientID string) {
	recipient, err := s.Directory.GetPerson(context.TODO(), recipientID)
	if err != nil {
		log.Printf("⚠️ Simulator could not look up %s, skipping reply: %v", recipientID, err)
		return
	}
	if recipient == nil || !recipient.IsSynthetic {
		return
	}

	delay := s.pickDelay()
	s.Scheduler.Schedule(relationshipID, delay, func() {
		s.deliverReply(relationshipID, recipientID)
	})
	log.Printf("🤖 Reply from %s scheduled for %s in %s", recipientID, relationshipID, delay)
}

// deliverReply runs when the timer fires: pick a stage-appropriate line and
// send it back through the normal chat path.
func (s *SimulatorService) deliverReply(relationshipID, syntheticID string) {
	ctx := context.TODO()

	stage, err := s.Chat.ConversationStage(ctx, relationshipID)
	if err != nil {
		log.Printf("⚠️ Dropping simulated reply for %s: %v", relationshipID, err)
		return
	}

	pool := stagePools[stage]
	if len(pool) == 0 {
		pool = stagePools[models.StageGreeting]
	}

	s.mu.Lock()
	text := pool[s.rng.Intn(len(pool))]
	s.mu.Unlock()

	if _, err := s.Chat.SendMessage(ctx, syntheticID, relationshipID, text, true); err != nil {
		log.Printf("⚠️ Dropping simulated reply for %s: %v", relationshipID, err)
	}
}

func (s *SimulatorService) pickDelay() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	roll := s.rng.Intn(100)
	for _, tier := range s.Tiers {
		if roll < tier.Weight {
			spread := tier.Max - tier.Min
			if spread <= 0 {
				return tier.Min
			}
			return tier.Min + time.Duration(s.rng.Int63n(int64(spread)))
		}
		roll -= tier.Weight
	}
	// Unreachable while weights sum to 100.
	return s.Tiers[len(s.Tiers)-1].Min
}
