// Copyright (C) 2022  Shanhu Tech Inc.
//
// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the
// Free Software Foundation, either version 3 of the License, or (at your
// option) any later version.
//
// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU Affero General Public License
// for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package fwgen

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"shanhu.io/misc/errcode"
)

// UnknownVersion is the version string when git is not available.
const UnknownVersion = "UNKNOWN"

// VersionKind tells where a version string comes from.
type VersionKind int

// Version kinds.
const (
	VersionUnknown  VersionKind = iota // git is not available
	VersionTagged                      // described from a tag
	VersionRevision                    // r<count>.<short hash>, no tags
)

// Version is the version of the source tree.
type Version struct {
	Kind  VersionKind
	Value string
}

func (v *Version) String() string { return v.Value }

// TreeState tells if the working tree has uncommitted changes.
type TreeState int

// Tree states.
const (
	TreeUnknown TreeState = iota
	TreeClean
	TreeDirty
)

// IsDirty returns true only when the tree is known to be dirty.
func (s TreeState) IsDirty() bool { return s == TreeDirty }

func (s TreeState) String() string {
	switch s {
	case TreeClean:
		return "clean"
	case TreeDirty:
		return "dirty"
	}
	return "unknown"
}

// GitFunc runs git with args and returns its standard output.
type GitFunc func(args ...string) ([]byte, error)

// VersionProbe reads version information of a git source tree. It never
// modifies the tree.
type VersionProbe struct {
	git GitFunc
}

// NewVersionProbe creates a probe that runs git in dir.
func NewVersionProbe(dir string) *VersionProbe {
	return NewVersionProbeWith(newGitRunner(dir).output)
}

// NewVersionProbeWith creates a probe that uses the given git function.
func NewVersionProbeWith(git GitFunc) *VersionProbe {
	return &VersionProbe{git: git}
}

func noGit(err error) bool { return errors.Is(err, exec.ErrNotFound) }

// annotate annotates err, but keeps the missing git error as is so that
// callers can still find it.
func annotate(err error, msg string) error {
	if noGit(err) {
		return err
	}
	return errcode.Annotate(err, msg)
}

func (p *VersionProbe) output(args ...string) (string, error) {
	out, err := p.git(args...)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimSpace(out)), nil
}

// Version returns the version of the tree. When git is not installed, the
// version is UnknownVersion.
func (p *VersionProbe) Version() (*Version, error) {
	v, err := p.version()
	if err != nil {
		if noGit(err) {
			return &Version{Kind: VersionUnknown, Value: UnknownVersion}, nil
		}
		return nil, err
	}
	return v, nil
}

func (p *VersionProbe) version() (*Version, error) {
	tagCommit, err := p.output("rev-list", "--tags", "--max-count=1")
	if err != nil {
		return nil, annotate(err, "find tags")
	}
	if tagCommit != "" {
		desc, err := p.output("describe")
		if err != nil {
			return nil, annotate(err, "git describe")
		}
		return &Version{Kind: VersionTagged, Value: desc}, nil
	}

	count, err := p.output("rev-list", "--count", "HEAD")
	if err != nil {
		return nil, annotate(err, "count commits")
	}
	hash, err := p.output("rev-parse", "--short", "HEAD")
	if err != nil {
		return nil, annotate(err, "get HEAD commit")
	}
	return &Version{
		Kind:  VersionRevision,
		Value: fmt.Sprintf("r%s.%s", count, hash),
	}, nil
}

// TreeState checks if the working tree differs from the last commit. When
// git is not installed, the state is TreeUnknown.
func (p *VersionProbe) TreeState() (TreeState, error) {
	diff, err := p.output("diff", "--stat")
	if err != nil {
		if noGit(err) {
			return TreeUnknown, nil
		}
		return TreeUnknown, annotate(err, "git diff")
	}
	if strings.TrimSpace(diff) != "" {
		return TreeDirty, nil
	}
	return TreeClean, nil
}
