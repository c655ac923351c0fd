// SPDX-License-Identifier: GPL-3.0-only

package crypto

type Crypto struct {
	ArgonTime    uint32
	ArgonMemory  uint32
	ArgonThreads uint8
	ArgonKeyLen  uint32
	ArgonSaltLen uint32
}

// SessionClaims is the identity a verified session token names. The user it
// refers to must still be re-resolved against the database before any
// protected operation is allowed.
type SessionClaims struct {
	Username string
	UserID   uint
}
