// SPDX-License-Identifier: EPL-2.0

package formats

import "errors"

var ErrUnknownFormat = errors.New("no decoder for file extension")
