// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus_test

import (
	"testing"

	"github.com/biberhund/scashexplorer/ledger"
	"github.com/biberhund/scashexplorer/messagebus"
)

func TestQueue(t *testing.T) {

	q := messagebus.New(3)

	heights := []int{1, 2, 3}
	for _, h := range heights {
		q.Send("test", ledger.Event{Height: h})
	}

	if q.TrySend("test", ledger.Event{Height: 4}) {
		t.Errorf("full queue accepted an event")
	}

	queue := q.Chan()
	for _, h := range heights {
		received := <-queue
		if received.Event.Height != h {
			t.Errorf("actual: %d  expected: %d", received.Event.Height, h)
		}
		if "test" != received.From {
			t.Errorf("actual from: %q  expected: %q", received.From, "test")
		}
	}
}
