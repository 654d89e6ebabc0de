// Copyright 2025 The LUCI Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ebuild

import (
	"strings"

	"go.chromium.org/luci/common/data/stringset"
)

// parseVars extracts top-level shell variable assignments from ebuild text.
// It understands the forms used by CROS_WORKON metadata:
//
//	VAR=value
//	VAR="value"
//	VAR=("a" "b")       # possibly spanning multiple lines
//
// Only variables in names are collected. Array assignments yield one entry
// per element; scalar assignments yield a single entry.
func parseVars(content string, names stringset.Set) map[string][]string {
	vars := map[string][]string{}
	lines := strings.Split(content, "\n")
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		name, rest, ok := strings.Cut(line, "=")
		if !ok || !isVarName(name) || !names.Has(name) {
			continue
		}
		if strings.HasPrefix(rest, "(") {
			body := strings.TrimPrefix(rest, "(")
			for !strings.Contains(body, ")") && i+1 < len(lines) {
				i++
				body += " " + strings.TrimSpace(lines[i])
			}
			if j := strings.Index(body, ")"); j >= 0 {
				body = body[:j]
			}
			vars[name] = splitQuoted(body)
		} else {
			vars[name] = []string{unquote(strings.TrimSpace(rest))}
		}
	}
	return vars
}

func isVarName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}

func splitQuoted(s string) []string {
	fields := strings.Fields(s)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, unquote(f))
	}
	return out
}

func unquote(s string) string {
	if len(s) >= 2 {
		if q := s[0]; (q == '"' || q == '\'') && s[len(s)-1] == q {
			return s[1 : len(s)-1]
		}
	}
	return s
}
