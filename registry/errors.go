// SPDX-License-Identifier: EPL-2.0

package registry

import "errors"

var (
	ErrDuplicateBlock = errors.New("block already registered")
	ErrUnknownBlock   = errors.New("unknown block")
	ErrMissingParam   = errors.New("missing required parameter")
	ErrInvalidParams  = errors.New("invalid block parameters")
)
