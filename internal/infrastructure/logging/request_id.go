package logging

import (
	"strings"

	"github.com/google/uuid"
)

// RequestIDGenerator generates unique request IDs
type RequestIDGenerator struct {
	prefix string
}

func NewRequestIDGenerator(prefix string) *RequestIDGenerator {
	if prefix == "" {
		prefix = "req"
	}
	return &RequestIDGenerator{
		prefix: prefix,
	}
}

// Generate creates a new unique request ID.
// Format: {prefix}_{uuid v4}
func (g *RequestIDGenerator) Generate() string {
	return g.prefix + "_" + uuid.NewString()
}

// GenerateShort creates a shorter request ID from the first uuid group
func (g *RequestIDGenerator) GenerateShort() string {
	id := uuid.NewString()
	if idx := strings.IndexByte(id, '-'); idx != -1 {
		id = id[:idx]
	}
	return g.prefix + "_" + id
}

var defaultGenerator = NewRequestIDGenerator("req")

// GenerateRequestID generates a request ID using the default generator
func GenerateRequestID() string {
	return defaultGenerator.Generate()
}

// GenerateShortRequestID generates a short request ID using the default generator
func GenerateShortRequestID() string {
	return defaultGenerator.GenerateShort()
}

// IsValidRequestID accepts IDs propagated by a caller through X-Request-ID.
// Anything longer than 128 chars or carrying control characters is rejected.
func IsValidRequestID(id string) bool {
	if id == "" || len(id) > 128 {
		return false
	}
	for _, r := range id {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}
