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

// Package relevancypb holds the wire messages of the relevancy Build API
// surface, hand-maintained in the shape protoc-gen-go would emit for
// relevancy.proto (the checked-in schema is authoritative).
package relevancypb

// BuildTarget is a board/configuration for which ChromeOS images are built.
type BuildTarget struct {
	Name string `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
}

func (x *BuildTarget) GetName() string {
	if x != nil {
		return x.Name
	}
	return ""
}

// Path is a changed file, relative to the source checkout root.
type Path struct {
	Path string `protobuf:"bytes,1,opt,name=path,proto3" json:"path,omitempty"`
}

func (x *Path) GetPath() string {
	if x != nil {
		return x.Path
	}
	return ""
}

// Reason says why a build target is relevant to a change. Exactly one of the
// trigger variants is set.
type Reason struct {
	// Types that are assignable to Trigger:
	//
	//	*Reason_PathRule_
	//	*Reason_Profile_
	//	*Reason_Overlay_
	//	*Reason_Package_
	Trigger isReason_Trigger `protobuf_oneof:"trigger"`
}

type isReason_Trigger interface {
	isReason_Trigger()
}

type Reason_PathRule_ struct {
	PathRule *Reason_PathRule `protobuf:"bytes,1,opt,name=path_rule,json=pathRule,proto3,oneof"`
}

type Reason_Profile_ struct {
	Profile *Reason_Profile `protobuf:"bytes,2,opt,name=profile,proto3,oneof"`
}

type Reason_Overlay_ struct {
	Overlay *Reason_Overlay `protobuf:"bytes,3,opt,name=overlay,proto3,oneof"`
}

type Reason_Package_ struct {
	Package *Reason_Package `protobuf:"bytes,4,opt,name=package,proto3,oneof"`
}

func (*Reason_PathRule_) isReason_Trigger() {}
func (*Reason_Profile_) isReason_Trigger()  {}
func (*Reason_Overlay_) isReason_Trigger()  {}
func (*Reason_Package_) isReason_Trigger()  {}

func (x *Reason) GetTrigger() isReason_Trigger {
	if x != nil {
		return x.Trigger
	}
	return nil
}

func (x *Reason) GetPathRule() *Reason_PathRule {
	if w, ok := x.GetTrigger().(*Reason_PathRule_); ok {
		return w.PathRule
	}
	return nil
}

func (x *Reason) GetProfile() *Reason_Profile {
	if w, ok := x.GetTrigger().(*Reason_Profile_); ok {
		return w.Profile
	}
	return nil
}

func (x *Reason) GetOverlay() *Reason_Overlay {
	if w, ok := x.GetTrigger().(*Reason_Overlay_); ok {
		return w.Overlay
	}
	return nil
}

func (x *Reason) GetPackage() *Reason_Package {
	if w, ok := x.GetTrigger().(*Reason_Package_); ok {
		return w.Package
	}
	return nil
}

// Reason_PathRule: an explicit path -> target mapping matched.
type Reason_PathRule struct {
	Path    string `protobuf:"bytes,1,opt,name=path,proto3" json:"path,omitempty"`
	Pattern string `protobuf:"bytes,2,opt,name=pattern,proto3" json:"pattern,omitempty"`
}

// Reason_Profile: the path is inside a profile applicable to the target.
type Reason_Profile struct {
	Path       string `protobuf:"bytes,1,opt,name=path,proto3" json:"path,omitempty"`
	ProfileDir string `protobuf:"bytes,2,opt,name=profile_dir,json=profileDir,proto3" json:"profile_dir,omitempty"`
	Overlay    string `protobuf:"bytes,3,opt,name=overlay,proto3" json:"overlay,omitempty"`
}

// Reason_Overlay: the path is inside an overlay of the target's chain.
type Reason_Overlay struct {
	Path    string `protobuf:"bytes,1,opt,name=path,proto3" json:"path,omitempty"`
	Overlay string `protobuf:"bytes,2,opt,name=overlay,proto3" json:"overlay,omitempty"`
}

// Reason_Package: the path is owned by a cros-workon package of the target.
type Reason_Package struct {
	Path     string   `protobuf:"bytes,1,opt,name=path,proto3" json:"path,omitempty"`
	Packages []string `protobuf:"bytes,2,rep,name=packages,proto3" json:"packages,omitempty"`
}

type GetRelevantBuildTargetsRequest struct {
	BuildTargets  []*BuildTarget `protobuf:"bytes,1,rep,name=build_targets,json=buildTargets,proto3" json:"build_targets,omitempty"`
	AffectedPaths []*Path        `protobuf:"bytes,2,rep,name=affected_paths,json=affectedPaths,proto3" json:"affected_paths,omitempty"`
}

func (x *GetRelevantBuildTargetsRequest) GetBuildTargets() []*BuildTarget {
	if x != nil {
		return x.BuildTargets
	}
	return nil
}

func (x *GetRelevantBuildTargetsRequest) GetAffectedPaths() []*Path {
	if x != nil {
		return x.AffectedPaths
	}
	return nil
}

type GetRelevantBuildTargetsResponse struct {
	BuildTargets []*GetRelevantBuildTargetsResponse_Target `protobuf:"bytes,1,rep,name=build_targets,json=buildTargets,proto3" json:"build_targets,omitempty"`
}

func (x *GetRelevantBuildTargetsResponse) GetBuildTargets() []*GetRelevantBuildTargetsResponse_Target {
	if x != nil {
		return x.BuildTargets
	}
	return nil
}

type GetRelevantBuildTargetsResponse_Target struct {
	BuildTarget *BuildTarget `protobuf:"bytes,1,opt,name=build_target,json=buildTarget,proto3" json:"build_target,omitempty"`
	Reason      *Reason      `protobuf:"bytes,2,opt,name=reason,proto3" json:"reason,omitempty"`
}

func (x *GetRelevantBuildTargetsResponse_Target) GetBuildTarget() *BuildTarget {
	if x != nil {
		return x.BuildTarget
	}
	return nil
}

func (x *GetRelevantBuildTargetsResponse_Target) GetReason() *Reason {
	if x != nil {
		return x.Reason
	}
	return nil
}
