package models

// UserRole is a capability granted to a user.
type UserRole string

const (
	RoleDancer     UserRole = "DANCER"
	RoleInstructor UserRole = "INSTRUCTOR"
	RoleAdmin      UserRole = "ADMIN"
	RoleOrganizer  UserRole = "ORGANIZER"
)

// PrimaryRole is the partner role a dancer usually takes.
type PrimaryRole string

const (
	PrimaryRoleLead   PrimaryRole = "LEAD"
	PrimaryRoleFollow PrimaryRole = "FOLLOW"
)

// WsdcSkillLevel follows the World Swing Dance Council divisions.
type WsdcSkillLevel string

const (
	LevelNewcomer     WsdcSkillLevel = "NEWCOMER"
	LevelNovice       WsdcSkillLevel = "NOVICE"
	LevelIntermediate WsdcSkillLevel = "INTERMEDIATE"
	LevelAdvanced     WsdcSkillLevel = "ADVANCED"
	LevelAllStar      WsdcSkillLevel = "ALL_STAR"
	LevelChampion     WsdcSkillLevel = "CHAMPION"
)

// AccountStatus gates whether a profile is usable and listed.
type AccountStatus string

const (
	AccountActive    AccountStatus = "ACTIVE"
	AccountSuspended AccountStatus = "SUSPENDED"
	AccountHidden    AccountStatus = "HIDDEN"
)

type LocationType string

const (
	LocationStudio           LocationType = "STUDIO"
	LocationCommunitySpace   LocationType = "COMMUNITY_SPACE"
	LocationPrivateResidence LocationType = "PRIVATE_RESIDENCE"
	LocationOutdoor          LocationType = "OUTDOOR"
	LocationOther            LocationType = "OTHER"
)

type SessionType string

const (
	SessionPartnerPractice       SessionType = "PARTNER_PRACTICE"
	SessionGroupPractice         SessionType = "GROUP_PRACTICE"
	SessionPrivateWithInstructor SessionType = "PRIVATE_WITH_INSTRUCTOR"
	SessionClass                 SessionType = "CLASS"
)

type SessionStatus string

const (
	SessionProposed  SessionStatus = "PROPOSED"
	SessionScheduled SessionStatus = "SCHEDULED"
	SessionCompleted SessionStatus = "COMPLETED"
	SessionCancelled SessionStatus = "CANCELLED"
)

// Visibility scopes who may see a session or note.
type Visibility string

const (
	VisibilityAuthorOnly       Visibility = "AUTHOR_ONLY"
	VisibilityParticipantsOnly Visibility = "PARTICIPANTS_ONLY"
	VisibilityPublic           Visibility = "PUBLIC"
)

type FocusArea string

const (
	FocusConnection      FocusArea = "CONNECTION"
	FocusTechnique       FocusArea = "TECHNIQUE"
	FocusMusicality      FocusArea = "MUSICALITY"
	FocusCompetitionPrep FocusArea = "COMPETITION_PREP"
	FocusStyling         FocusArea = "STYLING"
	FocusSocialDancing   FocusArea = "SOCIAL_DANCING"
	FocusChoreography    FocusArea = "CHOREOGRAPHY"
	FocusMindset         FocusArea = "MINDSET"
	FocusConditioning    FocusArea = "CONDITIONING"
)

var focusAreaNames = map[FocusArea]string{
	FocusConnection:      "Connection",
	FocusTechnique:       "Technique",
	FocusMusicality:      "Musicality",
	FocusCompetitionPrep: "Competition Prep",
	FocusStyling:         "Styling",
	FocusSocialDancing:   "Social Dancing",
	FocusChoreography:    "Choreography",
	FocusMindset:         "Mindset",
	FocusConditioning:    "Conditioning",
}

// DisplayName returns the human readable label, or the raw value when unknown.
func (f FocusArea) DisplayName() string {
	if name, ok := focusAreaNames[f]; ok {
		return name
	}
	return string(f)
}

type AbuseCategory string

const (
	AbuseHarassment AbuseCategory = "HARASSMENT"
	AbuseSafety     AbuseCategory = "SAFETY"
	AbuseSpam       AbuseCategory = "SPAM"
	AbusePayment    AbuseCategory = "PAYMENT"
	AbuseOther      AbuseCategory = "OTHER"
)

type AbuseReportStatus string

const (
	ReportOpen         AbuseReportStatus = "OPEN"
	ReportAcknowledged AbuseReportStatus = "ACKNOWLEDGED"
	ReportInReview     AbuseReportStatus = "IN_REVIEW"
	ReportResolved     AbuseReportStatus = "RESOLVED"
	ReportDismissed    AbuseReportStatus = "DISMISSED"
)

var reportTransitions = map[AbuseReportStatus][]AbuseReportStatus{
	ReportOpen:         {ReportAcknowledged, ReportInReview, ReportResolved, ReportDismissed},
	ReportAcknowledged: {ReportInReview, ReportResolved, ReportDismissed},
	ReportInReview:     {ReportResolved, ReportDismissed},
	ReportResolved:     {ReportInReview},
	ReportDismissed:    {ReportInReview},
}

// Valid reports whether s is a known status.
func (s AbuseReportStatus) Valid() bool {
	_, ok := reportTransitions[s]
	return ok
}

// CanTransitionTo reports whether moderators may move a report from s to next.
// Re-saving the current status is always allowed so notes can be edited.
func (s AbuseReportStatus) CanTransitionTo(next AbuseReportStatus) bool {
	if s == next {
		return next.Valid()
	}
	for _, allowed := range reportTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)
