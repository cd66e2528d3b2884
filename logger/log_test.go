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

package logger_test

import (
	"testing"

	"github.com/jetsetilly/nestrace/logger"
	"github.com/jetsetilly/nestrace/test"
)

func TestLogger(t *testing.T) {
	logger.Clear()

	tw := &test.Writer{}
	logger.Write(tw)
	test.Equate(t, tw.Compare(""), true)

	logger.Log("test", "this is a test")
	logger.Write(tw)
	test.Equate(t, tw.Compare("test: this is a test\n"), true)

	tw.Clear()
	logger.Logf("test", "this is test %d", 2)
	logger.Write(tw)
	test.Equate(t, tw.Compare("test: this is a test\ntest: this is test 2\n"), true)

	logger.Clear()
	tw.Clear()
	logger.Write(tw)
	test.Equate(t, tw.Compare(""), true)
}

func TestDeduplication(t *testing.T) {
	logger.Clear()

	// adjacent identical entries are collapsed with a repeat count
	logger.Log("test", "same message")
	logger.Log("test", "same message")
	logger.Log("test", "same message")

	tw := &test.Writer{}
	logger.Write(tw)
	test.Equate(t, tw.Compare("test: same message (repeat x3)\n"), true)

	// a different entry breaks the run
	logger.Log("test", "another message")
	logger.Log("test", "same message")

	tw.Clear()
	logger.Write(tw)
	test.Equate(t, tw.Compare("test: same message (repeat x3)\ntest: another message\ntest: same message\n"), true)
}

func TestTail(t *testing.T) {
	logger.Clear()

	logger.Log("test", "first")
	logger.Log("test", "second")
	logger.Log("test", "third")

	tw := &test.Writer{}
	logger.Tail(tw, 2)
	test.Equate(t, tw.Compare("test: second\ntest: third\n"), true)

	// a tail longer than the log is the whole log
	tw.Clear()
	logger.Tail(tw, 100)
	test.Equate(t, tw.Compare("test: first\ntest: second\ntest: third\n"), true)
}

func TestEcho(t *testing.T) {
	logger.Clear()

	tw := &test.Writer{}
	logger.SetEcho(tw)
	defer logger.SetEcho(nil)

	logger.Log("test", "echoed")
	test.Equate(t, tw.Compare("test: echoed\n"), true)
}
