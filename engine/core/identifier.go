package core

import (
	"sync/atomic"

	"github.com/google/uuid"
)

var nextHandle atomic.Uint32

// NewTextureName returns a unique name for a texture handle.
func NewTextureName(prefix string) string {
	if prefix == "" {
		prefix = "texture"
	}
	return prefix + "-" + uuid.NewString()
}

// IdentifierAquireNewID hands out a process wide, non zero handle id.
func IdentifierAquireNewID() uint32 {
	return nextHandle.Add(1)
}
