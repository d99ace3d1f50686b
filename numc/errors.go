// SPDX-License-Identifier: MIT

package numc

import "errors"

// ErrInvalidRequest is returned by New for a nil request.
// Use after Close surfaces as matrix.ErrReleased.
var ErrInvalidRequest = errors.New("numc: invalid construction request")
