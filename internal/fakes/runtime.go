// Package fakes stands in for the two collaborators this spec names but
// deliberately does not implement: the agent's chat loop and a real tool
// runtime. Runtime performs simple, real filesystem effects for a small
// set of tool names so the CLI demo commands and end-to-end tests can
// drive the governance pipeline without a live coding agent attached.
//
// The registration idiom (name -> constructor, looked up at call time)
// mirrors the teacher's agent.Factory/agent.Register/agent.Get pattern,
// generalized from "which coding agent" to "which fake tool handler".
package fakes

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Heban-7/governed-ai-native-ide/internal/govtypes"
)

// Handler executes one tool invocation's effect against workdir, returning
// a result value for the caller (e.g. file content for read_file).
type Handler func(ctx context.Context, workdir string, payload govtypes.Payload) (any, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Handler{}
)

func init() {
	Register("read_file", readFile)
	Register("write_to_file", writeToFile)
	Register("apply_diff", applyDiff)
	Register("delete", deleteFile)
	Register("execute_command", executeCommand)
	Register("list_files", listFiles)
}

// Register adds a handler under name, replacing any existing handler for
// that name.
func Register(name string, h Handler) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = h
}

// Names returns every registered tool name, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Runtime is a fake tool runtime bound to one working directory. Its Run
// method is the function an hooks.ExecuteOptions.Run closure delegates to.
type Runtime struct {
	WorkingDirectory string
}

// New returns a Runtime rooted at workdir.
func New(workdir string) *Runtime {
	return &Runtime{WorkingDirectory: workdir}
}

// Run looks up toolName's handler and invokes it against r.WorkingDirectory.
// An unknown tool name is itself an error — this runtime never silently
// no-ops a call the caller thought it was making.
func (r *Runtime) Run(ctx context.Context, toolName string, payload govtypes.Payload) (any, error) {
	registryMu.RLock()
	h, ok := registry[toolName]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("fakes: no handler registered for tool %q", toolName)
	}
	return h(ctx, r.WorkingDirectory, payload)
}

func resolvePath(workdir, rel string) (string, error) {
	if rel == "" {
		return "", fmt.Errorf("payload missing path/file_path")
	}
	full := filepath.Join(workdir, rel)
	cleanWorkdir := filepath.Clean(workdir)
	if full != cleanWorkdir && !strings.HasPrefix(full, cleanWorkdir+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes working directory", rel)
	}
	return full, nil
}

func payloadPath(payload govtypes.Payload) string {
	if p := payload.String("path"); p != "" {
		return p
	}
	return payload.String("file_path")
}

func readFile(_ context.Context, workdir string, payload govtypes.Payload) (any, error) {
	full, err := resolvePath(workdir, payloadPath(payload))
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(full) //nolint:gosec // sandboxed under workdir by resolvePath
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", full, err)
	}
	return string(content), nil
}

func writeToFile(_ context.Context, workdir string, payload govtypes.Payload) (any, error) {
	full, err := resolvePath(workdir, payloadPath(payload))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, fmt.Errorf("creating parent directories for %s: %w", full, err)
	}
	content := payload.String("content")
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil { //nolint:gosec // demo artifact, not production data
		return nil, fmt.Errorf("writing %s: %w", full, err)
	}
	return nil, nil
}

// applyDiff rewrites the target file to payload's "new_string", the same
// whole-replacement semantics the Trace Ledger Writer's range-derivation
// already treats "new_string"-shaped payloads as carrying (spec §4.5).
func applyDiff(_ context.Context, workdir string, payload govtypes.Payload) (any, error) {
	full, err := resolvePath(workdir, payloadPath(payload))
	if err != nil {
		return nil, err
	}
	newString := payload.String("new_string")
	if newString == "" {
		return nil, fmt.Errorf("apply_diff payload missing new_string")
	}
	if err := os.WriteFile(full, []byte(newString), 0o644); err != nil { //nolint:gosec // demo artifact
		return nil, fmt.Errorf("writing %s: %w", full, err)
	}
	return nil, nil
}

func deleteFile(_ context.Context, workdir string, payload govtypes.Payload) (any, error) {
	full, err := resolvePath(workdir, payloadPath(payload))
	if err != nil {
		return nil, err
	}
	if err := os.Remove(full); err != nil {
		return nil, fmt.Errorf("removing %s: %w", full, err)
	}
	return nil, nil
}

// executeCommand is intentionally inert: this runtime never shells out on
// the caller's behalf (the governance pipeline it exercises classifies
// execute_command as DESTRUCTIVE precisely because an arbitrary command is
// not something the pipeline can inspect, let alone this fake should run).
func executeCommand(_ context.Context, _ string, payload govtypes.Payload) (any, error) {
	return fmt.Sprintf("simulated: %s", payload.String("command")), nil
}

func listFiles(_ context.Context, workdir string, payload govtypes.Payload) (any, error) {
	dirRel := payloadPath(payload)
	full := workdir
	if dirRel != "" {
		var err error
		full, err = resolvePath(workdir, dirRel)
		if err != nil {
			return nil, err
		}
	}
	entries, err := os.ReadDir(full)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", full, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
