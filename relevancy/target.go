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

import relevancypb "go.chromium.org/crosrelevancy/relevancy/proto"

// BuildTarget identifies a board to evaluate relevancy for. It is a value;
// identity is Name plus Public.
type BuildTarget struct {
	// Name is the board name, e.g. "fake".
	Name string

	// Public restricts evaluation to public overlays. Private overlays and
	// profiles never mark a public target relevant.
	Public bool

	// KernelVersion is the kernel branch the board builds, e.g. "6.1".
	// Optional; it only feeds kernel path rules.
	KernelVersion string
}

func (t BuildTarget) String() string { return t.Name }

// ToProto renders the target for the Build API response.
func (t BuildTarget) ToProto() *relevancypb.BuildTarget {
	return &relevancypb.BuildTarget{Name: t.Name}
}

// targetKey is the identity of a BuildTarget for dedup and memoization.
type targetKey struct {
	name   string
	public bool
}

func (t BuildTarget) key() targetKey {
	return targetKey{name: t.Name, public: t.Public}
}
