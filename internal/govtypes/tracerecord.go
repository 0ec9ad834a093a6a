package govtypes

// RelatedLink is an enrichment link attached to a trace record conversation
// (spec §6): {"type":"specification|requirement|ticket|document","value":...}.
type RelatedLink struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// HashedRange is one modified line range and its content hash (spec §6).
type HashedRange struct {
	StartLine   int    `json:"start_line"`
	EndLine     int    `json:"end_line"`
	ContentHash string `json:"content_hash"`
}

// Contributor identifies the AI that produced a conversation turn
// (spec §6).
type Contributor struct {
	EntityType      string `json:"entity_type"`
	ModelIdentifier string `json:"model_identifier"`
	ModelVersion    string `json:"model_version,omitempty"`
	AgentRole       string `json:"agent_role,omitempty"`
	WorkerID        string `json:"worker_id,omitempty"`
	SupervisorID    string `json:"supervisor_id,omitempty"`
}

// ConversationMeta carries the classifier's output alongside the
// invocation that produced a trace conversation (spec §6).
type ConversationMeta struct {
	MutationClass      MutationClass      `json:"mutation_class"`
	MutationConfidence MutationConfidence `json:"mutation_confidence"`
	MutationSignals    []string           `json:"mutation_signals"`
	HookInvocationID   string             `json:"hook_invocation_id"`
}

// Conversation is one agent turn's contribution to a file (spec §6).
type Conversation struct {
	URL         string            `json:"url"`
	Contributor Contributor       `json:"contributor"`
	Ranges      []HashedRange     `json:"ranges"`
	Related     []RelatedLink     `json:"related"`
	Meta        ConversationMeta  `json:"meta"`
}

// TraceFile is one affected file's conversations within a trace record
// (spec §6).
type TraceFile struct {
	RelativePath  string         `json:"relative_path"`
	Conversations []Conversation `json:"conversations"`
}

// VCSInfo carries git state bound to a trace record (spec §6).
type VCSInfo struct {
	RevisionID string `json:"revision_id"`
}

// TraceRecord is one JSONL line in the append-only audit ledger
// (spec §3, §4.5, §6).
type TraceRecord struct {
	ID        string      `json:"id"`
	Timestamp string      `json:"timestamp"`
	VCS       VCSInfo     `json:"vcs"`
	Files     []TraceFile `json:"files"`
}
