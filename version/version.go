// This file is part of Nestrace.
//
// Nestrace is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Nestrace is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Nestrace.  If not, see <https://www.gnu.org/licenses/>.

// Package version records the version of the program.
package version

import (
	"runtime/debug"
)

// The name to use when referring to the application.
const ApplicationName = "Nestrace"

// if number is empty then the project was not built using the makefile.
var number string

// Revision contains the vcs revision. If the source has been modified but
// not committed the string is suffixed with "+dirty".
var revision string

// Version returns the version string and the revision string.
//
// If the version string is "unreleased" then the project was built manually
// (ie. not with the makefile). If it is "local" then there is no version
// number and no vcs information at all, which can happen when running with
// "go run .".
func Version() (string, string) {
	return number, revision
}

func init() {
	var vcsRevision string
	var vcsModified bool

	info, ok := debug.ReadBuildInfo()
	if ok {
		for _, v := range info.Settings {
			switch v.Key {
			case "vcs.revision":
				vcsRevision = v.Value
			case "vcs.modified":
				vcsModified = v.Value == "true"
			}
		}
	}

	if number == "" {
		if vcsRevision == "" {
			number = "local"
		} else {
			number = "unreleased"
		}
	}

	revision = vcsRevision
	if vcsModified {
		revision += "+dirty"
	}
}
