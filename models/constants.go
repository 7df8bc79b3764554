package models

// ✅ Interest statuses (derived, never stored; mutuality is computed from edges)
const (
	InterestStatusPending = "pending"
	InterestStatusMutual  = "mutual"
)

// ✅ Meeting statuses (forward-only: proposed → scheduled → completed)
const (
	MeetingStatusProposed  = "proposed"
	MeetingStatusScheduled = "scheduled"
	MeetingStatusCompleted = "completed"
)

// ✅ Conversation stages, derived from total message count per relationship
const (
	StageGreeting            = "greeting"
	StageSkillDiscussion     = "skill_discussion"
	StageMeetingCoordination = "meeting_coordination"
	StageBusyResponse        = "busy_response"
)
