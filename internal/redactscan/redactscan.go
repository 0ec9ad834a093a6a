// Package redactscan scans a content hash's canonical-content debug value
// for accidentally-captured secrets right before it is discarded (it is
// never itself written to the trace ledger), using gitleaks' detector — a
// teacher dependency (via the entireio-cli redact package) with no other
// home in this spec's scope, wired here per SPEC_FULL.md §9.1 rather than
// dropped.
package redactscan

import (
	"fmt"
	"strings"
	"sync"

	"github.com/zricethezav/gitleaks/v8/detect"
)

var (
	once     sync.Once
	detector *detect.Detector
	initErr  error
)

func get() (*detect.Detector, error) {
	once.Do(func() {
		detector, initErr = detect.NewDetectorDefaultConfig()
	})
	return detector, initErr
}

// Redact scans content for secrets matching gitleaks' default ruleset and
// replaces each match with a "[REDACTED:<rule>]" marker. If the detector
// cannot be constructed, or nothing matches, content is returned
// unchanged — redaction is a best-effort safety net over the ledger's
// debug fields, not a correctness requirement of the pipeline itself.
func Redact(content string) string {
	d, err := get()
	if err != nil || d == nil {
		return content
	}

	findings := d.DetectString(content)
	if len(findings) == 0 {
		return content
	}

	out := content
	for _, f := range findings {
		if f.Secret == "" {
			continue
		}
		marker := fmt.Sprintf("[REDACTED:%s]", f.RuleID)
		out = strings.ReplaceAll(out, f.Secret, marker)
	}
	return out
}
