package govtypes

import (
	"bytes"
	"encoding/json"
)

// ErrorCode enumerates the tool-error codes the core can emit (spec §6,
// §7). These are expected denials, never panics.
type ErrorCode string

const (
	CodeNoActiveIntent    ErrorCode = "NO_ACTIVE_INTENT"
	CodeScopeViolation    ErrorCode = "SCOPE_VIOLATION"
	CodeStaleFile         ErrorCode = "STALE_FILE"
	CodeHITLReject        ErrorCode = "HITL_REJECT"
	CodeHookInternalError ErrorCode = "HOOK_INTERNAL_ERROR"
)

// ToolError is the standard JSON shape pushed to the agent on a denial
// (spec §6): {"type":"tool_error","code":...,"message":...,"meta":{...}}.
type ToolError struct {
	Type    string         `json:"type"`
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// NewToolError builds a ToolError with Type fixed to "tool_error".
func NewToolError(code ErrorCode, message string, meta map[string]any) ToolError {
	return ToolError{Type: "tool_error", Code: code, Message: message, Meta: meta}
}

// JSON serializes the tool error to a single-line JSON string with fixed
// key order (type, code, message, meta), matching spec §6's shape exactly.
func (e ToolError) JSON() string {
	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.WriteString(`"type":`)
	writeJSONString(&buf, e.Type)
	buf.WriteString(`,"code":`)
	writeJSONString(&buf, string(e.Code))
	buf.WriteString(`,"message":`)
	writeJSONString(&buf, e.Message)
	if len(e.Meta) > 0 {
		buf.WriteString(`,"meta":`)
		metaBytes, err := json.Marshal(e.Meta)
		if err != nil {
			metaBytes = []byte("{}")
		}
		buf.Write(metaBytes)
	} else {
		buf.WriteString(`,"meta":{}`)
	}
	buf.WriteByte('}')
	return buf.String()
}

func writeJSONString(buf *bytes.Buffer, s string) {
	b, err := json.Marshal(s)
	if err != nil {
		buf.WriteString(`""`)
		return
	}
	buf.Write(b)
}

// HookWarning is the shape surfaced to the agent when a post-hook panics;
// the tool already executed so the operation is not retried (spec §4.1).
type HookWarning struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JSON serializes the hook warning to a single-line JSON string.
func (w HookWarning) JSON() string {
	b, err := json.Marshal(w)
	if err != nil {
		return `{"type":"hook_warning","code":"HOOK_INTERNAL_ERROR","message":"unknown"}`
	}
	return string(b)
}

// NewHookWarning builds a HookWarning with Type fixed to "hook_warning" and
// Code fixed to HOOK_INTERNAL_ERROR per spec §4.1.
func NewHookWarning(message string) HookWarning {
	return HookWarning{Type: "hook_warning", Code: string(CodeHookInternalError), Message: message}
}
