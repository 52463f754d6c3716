// SPDX-License-Identifier: EPL-2.0

package flowgraph

import "errors"

var (
	ErrNotSyncBlock = errors.New("block does not process this item type")
	ErrNoSink       = errors.New("graph has no sink")
	ErrRunning      = errors.New("graph is already running")
)
