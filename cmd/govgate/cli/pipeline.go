package cli

import (
	"time"

	"github.com/Heban-7/governed-ai-native-ide/internal/approval"
	"github.com/Heban-7/governed-ai-native-ide/internal/config"
	"github.com/Heban-7/governed-ai-native-ide/internal/handshake"
	"github.com/Heban-7/governed-ai-native-ide/internal/hooks"
	"github.com/Heban-7/governed-ai-native-ide/internal/ledger"
	"github.com/Heban-7/governed-ai-native-ide/internal/postprocess"
	"github.com/Heban-7/governed-ai-native-ide/internal/scope"
)

// buildEngine wires the Hook Engine with every pipeline component
// (handshake, scope/lock, trace ledger, post-process checks) in the
// order spec §4.1 requires: handshake before scope, so a session with no
// active intent is denied before the scope gate ever inspects the file
// list.
func buildEngine(settings config.Settings) *hooks.Engine {
	critical := settings.CriticalHooks
	if len(critical) == 0 {
		critical = config.DefaultCriticalHooks
	}
	engine := hooks.NewEngine(critical...)

	engine.RegisterPre("handshake", handshake.New().PreHook())
	engine.RegisterPre("scope", scope.New().PreHook())

	engine.RegisterPost("ledger", ledger.New().PostHook())

	if len(settings.PostprocessChecks) > 0 {
		checks := make([]postprocess.Check, 0, len(settings.PostprocessChecks))
		for _, c := range settings.PostprocessChecks {
			timeout := postprocess.DefaultTimeout
			if c.TimeoutSeconds > 0 {
				timeout = time.Duration(c.TimeoutSeconds) * time.Second
			}
			checks = append(checks, postprocess.Check{Name: c.Name, Command: c.Command, Timeout: timeout})
		}
		engine.RegisterPost("postprocess", postprocess.New(checks...).PostHook())
	}

	return engine
}

// approvalCapability returns the human-in-the-loop capability (the
// huh-based console) when --interactive is set, or approval.AutoReject
// otherwise, so runs without the flag never block on a prompt.
func approvalCapability(interactive bool) approval.Capability {
	if interactive {
		return approval.NewConsole()
	}
	return approval.AutoReject
}
