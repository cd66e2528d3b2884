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

// Package cpu defines the snapshot of 6502 state that the emulation hands to
// the tracer on every instruction retirement. The package does not execute
// instructions; the emulation engine that produces the snapshots is an
// external concern.
//
// The State type is a plain value. It is copied into the tracer's history
// ring without any pointer sharing so a snapshot taken at one point in the
// emulation is never disturbed by later execution.
package cpu
