package govtypes

import "time"

// Risk classifies whether a tool invocation can mutate state (spec §3).
type Risk string

const (
	RiskSafe        Risk = "SAFE"
	RiskDestructive Risk = "DESTRUCTIVE"
)

// MutationClass labels the shape of a destructive change for audit purposes.
// Classification is heuristic and never claims semantic equivalence
// (spec §1 Non-goals).
type MutationClass string

const (
	MutationASTRefactor     MutationClass = "AST_REFACTOR"
	MutationIntentEvolution MutationClass = "INTENT_EVOLUTION"
	MutationUnknown         MutationClass = "UNKNOWN"
)

// MutationConfidence is the classifier's confidence in a MutationClass.
type MutationConfidence string

const (
	ConfidenceHigh   MutationConfidence = "HIGH"
	ConfidenceMedium MutationConfidence = "MEDIUM"
	ConfidenceLow    MutationConfidence = "LOW"
)

// HashStrategy identifies which canonicalization strategy produced a
// ContentHash (spec §4.4).
type HashStrategy string

const (
	StrategyASTCanonical     HashStrategy = "ast_canonical"
	StrategyNormalizedString HashStrategy = "normalized_string"
)

// Intent is a named unit of work authorizing a set of files (spec §3).
type Intent struct {
	ID                 string   `yaml:"id" json:"id"`
	OwnedScope         []string `yaml:"owned_scope" json:"owned_scope"`
	Constraints        []string `yaml:"constraints" json:"constraints"`
	AcceptanceCriteria []string `yaml:"acceptance_criteria" json:"acceptance_criteria"`
}

// AgentMetadata describes the AI contributor attached to a session, used to
// populate trace-record contributor fields (spec §6).
type AgentMetadata struct {
	ModelIdentifier string
	ModelVersion    string
	AgentRole       string
	WorkerID        string
	SupervisorID    string
}

// Session is per-agent conversation state (spec §3). A session with no
// ActiveIntent must deny all mutating tools.
type Session struct {
	WorkingDirectory string
	TaskID           string
	InstanceID       string
	Agent            AgentMetadata
	ActiveIntentID   string

	// UserMessages is the mutable sink of text segments the agent will see
	// on its next turn (tool-error payloads, hook warnings, etc).
	UserMessages []string
}

// PushMessage appends a text segment to the session's next-turn sink.
func (s *Session) PushMessage(msg string) {
	s.UserMessages = append(s.UserMessages, msg)
}

// HasActiveIntent reports whether the session has an intent bound.
func (s *Session) HasActiveIntent() bool {
	return s != nil && s.ActiveIntentID != ""
}

// Invocation is one call of one tool (spec §3).
type Invocation struct {
	ID             string
	ToolName       string
	NormalizedName string
	Payload        Payload
	AffectedFiles  []string
	Classification Classification
	Allowed        bool
	Result         any
	Err            error
	Timestamp      time.Time
}

// Classification is the pure output of the Command Classifier (spec §3,
// §4.2).
type Classification struct {
	NormalizedToolName string
	Risk               Risk
	MutationClass      MutationClass
	MutationConfidence MutationConfidence
	Signals            []string
	AffectedFiles      []string
	DiffPreview        string
}

// IsDestructive reports whether this classification requires governance.
func (c Classification) IsDestructive() bool {
	return c.Risk == RiskDestructive
}

// ContentHash is the output of the Content Hasher (spec §3, §4.4).
type ContentHash struct {
	Digest            string
	Strategy          HashStrategy
	CanonicalContent  string
}

// Range is a 1-indexed, inclusive line range within a file.
type Range struct {
	StartLine int
	EndLine   int
}

// ExpansionSet is the process-wide map from intent identifier to
// human-approved additional globs (spec §3). It grows only and is never
// persisted.
type ExpansionSet interface {
	Globs(intentID string) []string
	Approve(intentID string, globs []string)
	Clear()
}
