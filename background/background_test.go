// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/biberhund/scashexplorer/background"
)

// rebuilder mimics a periodic index rebuild
type rebuilder struct {
	rebuilds int32
	stopped  int32
}

func (r *rebuilder) Run(args interface{}, shutdown <-chan struct{}) {
	interval := args.(time.Duration)
	t := time.NewTicker(interval)
	defer t.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-t.C:
			atomic.AddInt32(&r.rebuilds, 1)
		}
	}
	atomic.StoreInt32(&r.stopped, 1)
}

func TestStartAndStop(t *testing.T) {
	first := &rebuilder{}
	second := &rebuilder{}

	p := background.Start(background.Processes{first, second}, time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	p.Stop()

	assert.Equal(t, int32(1), atomic.LoadInt32(&first.stopped), "first stopped")
	assert.Equal(t, int32(1), atomic.LoadInt32(&second.stopped), "second stopped")
	assert.NotZero(t, atomic.LoadInt32(&first.rebuilds), "first ran")
	assert.NotZero(t, atomic.LoadInt32(&second.rebuilds), "second ran")

	after := atomic.LoadInt32(&first.rebuilds)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt32(&first.rebuilds), "no ticks after stop")
}

func TestStopTwice(t *testing.T) {
	p := background.Start(background.Processes{&rebuilder{}}, time.Millisecond)
	p.Stop()
	p.Stop()
}

func TestStopNil(t *testing.T) {
	var p *background.T
	p.Stop()
}

func TestStartEmpty(t *testing.T) {
	p := background.Start(nil, nil)
	p.Stop()
}
