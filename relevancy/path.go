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

package relevancy

import (
	"fmt"
	"path"
	"strings"
)

// InvalidPathError indicates a caller contract violation: a changed path that
// is absolute or escapes the checkout root. It aborts the whole evaluation.
type InvalidPathError struct {
	Path   string
	Reason string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid changed path %q: %s", e.Path, e.Reason)
}

// NormalizePath validates and cleans a changed path. Inputs must be
// /-separated and relative to the checkout root; a trailing slash or
// redundant "." segments normalize away. Windows-style separators and
// absolute or escaping paths are rejected.
func NormalizePath(p string) (string, error) {
	switch {
	case p == "":
		return "", &InvalidPathError{Path: p, Reason: "empty"}
	case strings.Contains(p, `\`):
		return "", &InvalidPathError{Path: p, Reason: "not /-separated"}
	case strings.HasPrefix(p, "/"):
		return "", &InvalidPathError{Path: p, Reason: "absolute; paths must be relative to the checkout root"}
	}
	cleaned := path.Clean(p)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", &InvalidPathError{Path: p, Reason: "outside the checkout root"}
	}
	return cleaned, nil
}

// underDir reports whether p equals dir or is inside it, matching whole path
// segments.
func underDir(p, dir string) bool {
	return p == dir || strings.HasPrefix(p, dir+"/")
}
