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

// Package overlay models portage overlays and profiles of a ChromeOS
// checkout, and discovers the overlay inheritance chain of a board.
package overlay

import (
	"context"
	"strings"

	"go.chromium.org/luci/common/errors"
)

// ErrUnknownBoard is returned (wrapped) by Finder.BoardOverlay when the
// checkout has no overlay for the requested board.
var ErrUnknownBoard = errors.New("unknown board")

// Overlay is a portage overlay directory in the checkout.
type Overlay struct {
	// Name is the portage repo name, from metadata/layout.conf, falling back
	// to the directory basename.
	Name string

	// Dir is the overlay directory, relative to the checkout root,
	// /-separated, e.g. "src/overlays/overlay-fake".
	Dir string

	// Private is true for overlays under src/private-overlays.
	Private bool
}

func (o *Overlay) String() string { return o.Name }

// Contains reports whether the checkout-relative path p is inside the
// overlay directory. The match is per path segment: "src/overlays/overlay-a"
// does not contain "src/overlays/overlay-ab/x".
func (o *Overlay) Contains(p string) bool {
	return p == o.Dir || strings.HasPrefix(p, o.Dir+"/")
}

// Profile is a make.defaults-bearing directory within an overlay.
type Profile struct {
	// Overlay is the overlay the profile belongs to.
	Overlay *Overlay

	// Dir is the profile directory, relative to the checkout root,
	// e.g. "src/overlays/overlay-fake/profiles/base".
	Dir string
}

func (p *Profile) String() string { return p.Dir }

// Contains reports whether the checkout-relative path is inside the profile
// directory.
func (p *Profile) Contains(path string) bool {
	return path == p.Dir || strings.HasPrefix(path, p.Dir+"/")
}

// Finder answers overlay topology questions about one checkout.
//
// Implementations own their I/O and failure policy. Results are not cached
// here; callers memoize per evaluation (overlay topology does not change
// mid-invocation).
type Finder interface {
	// BoardOverlay returns the public overlay of the board, conventionally
	// src/overlays/overlay-<board>. The returned error wraps ErrUnknownBoard
	// if the overlay does not exist.
	BoardOverlay(ctx context.Context, board string) (*Overlay, error)

	// PrivateBoardOverlay returns the private overlay variant of the board,
	// conventionally src/private-overlays/overlay-<board>-private.
	// Returns (nil, nil) if the checkout has no such overlay.
	PrivateBoardOverlay(ctx context.Context, board string) (*Overlay, error)

	// Parents returns the overlays named by o's profiles/base/parent file,
	// in file order. Returns (nil, nil) if o declares no parents.
	Parents(ctx context.Context, o *Overlay) ([]*Overlay, error)

	// Profiles returns all profiles of the overlay.
	Profiles(ctx context.Context, o *Overlay) ([]*Profile, error)

	// ListBoards returns the names of all boards with a public overlay in
	// the checkout, sorted.
	ListBoards(ctx context.Context) ([]string, error)
}
