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

// Package rpc contains the Build API handler for relevancy requests.
package rpc

import (
	"context"

	"google.golang.org/grpc/codes"

	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/grpc/appstatus"

	"go.chromium.org/crosrelevancy/portage/ebuild"
	"go.chromium.org/crosrelevancy/portage/overlay"
	"go.chromium.org/crosrelevancy/relevancy"
	relevancypb "go.chromium.org/crosrelevancy/relevancy/proto"
)

// RelevancyServer handles GetRelevantBuildTargets requests against one
// checkout.
type RelevancyServer struct {
	// Finder answers overlay topology queries of the checkout.
	Finder overlay.Finder

	// Packages enumerates cros-workon packages of the checkout.
	Packages ebuild.Enumerator
}

// NewRelevancyServer returns a server reading the checkout at root.
func NewRelevancyServer(root string) *RelevancyServer {
	return &RelevancyServer{
		Finder:   overlay.NewFSFinder(root),
		Packages: ebuild.NewFSEnumerator(root),
	}
}

// GetRelevantBuildTargets returns the subset of the requested build targets
// affected by the request's changed paths, each with the reason it is
// affected.
//
// The Build API runs against full internal checkouts, so targets are
// evaluated with private overlays in scope.
func (s *RelevancyServer) GetRelevantBuildTargets(ctx context.Context, req *relevancypb.GetRelevantBuildTargetsRequest) (*relevancypb.GetRelevantBuildTargetsResponse, error) {
	targets := make([]relevancy.BuildTarget, len(req.GetBuildTargets()))
	for i, bt := range req.GetBuildTargets() {
		if bt.GetName() == "" {
			return nil, appstatus.Errorf(codes.InvalidArgument, "build_targets[%d]: name is required", i)
		}
		targets[i] = relevancy.BuildTarget{Name: bt.GetName()}
	}
	paths := make([]string, len(req.GetAffectedPaths()))
	for i, p := range req.GetAffectedPaths() {
		paths[i] = p.GetPath()
	}

	ev := &relevancy.Evaluator{Finder: s.Finder, Packages: s.Packages}
	results, err := ev.RelevantBuildTargets(ctx, targets, paths)
	if err != nil {
		var ipe *relevancy.InvalidPathError
		if errors.As(err, &ipe) {
			return nil, appstatus.Errorf(codes.InvalidArgument, "%s", ipe)
		}
		return nil, errors.Fmt("computing relevant build targets: %w", err)
	}

	resp := &relevancypb.GetRelevantBuildTargetsResponse{}
	for _, r := range results {
		resp.BuildTargets = append(resp.BuildTargets, &relevancypb.GetRelevantBuildTargetsResponse_Target{
			BuildTarget: r.Target.ToProto(),
			Reason:      r.Reason.ToProto(),
		})
	}
	return resp, nil
}
