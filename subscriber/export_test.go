// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package subscriber

import (
	"github.com/bitmark-inc/logger"

	"github.com/biberhund/scashexplorer/messagebus"
)

// Processor - a subscriber without a socket
type Processor struct {
	s *Subscriber
}

func NewProcessor(name string, queue *messagebus.Queue, log *logger.L) Processor {
	return Processor{
		s: &Subscriber{
			log:   log,
			name:  name,
			queue: queue,
		},
	}
}

func (p Processor) Process(frames ...[]byte) error {
	return p.s.process(frames)
}
