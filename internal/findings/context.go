// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package findings

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// FormatBundle renders a context bundle for a pass-2 prompt. Findings
// arrive already ordered by ContextFor; content keys are sorted so the
// same findings always render the same text.
func FormatBundle(fs []types.Finding) string {
	if len(fs) == 0 {
		return ""
	}

	var b strings.Builder
	for _, f := range fs {
		fmt.Fprintf(&b, "- [%s] %s from %s: %s\n", f.Priority, f.Type, f.Source, renderContent(f.Content))
	}
	return strings.TrimRight(b.String(), "\n")
}

// IDs returns the finding ids in order, for recording which context a
// re-run consumed.
func IDs(fs []types.Finding) []int64 {
	if len(fs) == 0 {
		return nil
	}
	out := make([]int64, len(fs))
	for i, f := range fs {
		out[i] = f.ID
	}
	return out
}

func renderContent(content map[string]any) string {
	keys := make([]string, 0, len(content))
	for k := range content {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, content[k]))
	}
	return strings.Join(parts, "; ")
}
