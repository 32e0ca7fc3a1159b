// Package identity maps free-form account identifiers (numeric id, phone,
// email) to canonical account ids.
package identity

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/contract"
)

// Resolver classifies an identifier by shape and performs at most one
// directory lookup. Every failure mode degrades to a miss; the orchestrator
// re-prompts the user.
type Resolver struct {
	directory Directory
}

var _ contractx.IdentityResolver = (*Resolver)(nil)

func NewResolver(directory Directory) *Resolver {
	return &Resolver{directory: directory}
}

func (r *Resolver) Resolve(ctx context.Context, identifier string) (int64, bool) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return 0, false
	}

	// All-digit identifiers are account ids; no lookup.
	if isDigits(identifier) {
		id, err := strconv.ParseInt(identifier, 10, 64)
		if err != nil {
			return 0, false
		}
		return id, true
	}

	if r.directory == nil {
		return 0, false
	}

	var (
		id    int64
		found bool
		err   error
	)
	switch {
	case strings.HasPrefix(identifier, "+"):
		id, found, err = r.directory.ByPhone(ctx, identifier)
	case strings.Contains(identifier, "@"):
		id, found, err = r.directory.ByEmail(ctx, identifier)
	default:
		return 0, false
	}
	if err != nil {
		log.Warn().Err(err).Str("identifier", identifier).Msg("identity lookup failed")
		return 0, false
	}
	return id, found
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
