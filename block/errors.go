// SPDX-License-Identifier: EPL-2.0

package block

import "errors"

var (
	ErrSignatureMismatch = errors.New("io signatures do not match")
	ErrOverProduce       = errors.New("work produced more items than it consumed")
)
