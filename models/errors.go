// SPDX-License-Identifier: GPL-3.0-only

package models

import "errors"

// Store-level failures. Handlers translate these to HTTP status codes; the
// messages are safe to show to callers.
var (
	ErrConflict         = errors.New("resource already exists")
	ErrNotFound         = errors.New("resource not found")
	ErrForbidden        = errors.New("not authorized")
	ErrInvalidOrExpired = errors.New("invalid or expired")
)
