package riot

import (
	"strings"

	"github.com/runesight/runesight/pkg/errors"
)

// RiotID is a parsed "gameName#tagLine" identifier.
type RiotID struct {
	GameName string
	TagLine  string
}

// String returns the canonical "gameName#tagLine" form.
func (id RiotID) String() string {
	return id.GameName + "#" + id.TagLine
}

// ParseRiotID parses and validates a "gameName#tagLine" identifier.
// Game names are 3-16 characters, tag lines 2-5.
func ParseRiotID(raw string) (RiotID, error) {
	name, tag, found := strings.Cut(raw, "#")
	if !found {
		return RiotID{}, errors.NewValidationError("riot_id", raw, "expected 'gameName#tagLine' format")
	}

	name = strings.TrimSpace(name)
	tag = strings.TrimSpace(tag)

	if len(name) < 3 || len(name) > 16 {
		return RiotID{}, errors.NewValidationError("riot_id", raw, "game name must be 3-16 characters")
	}
	if len(tag) < 2 || len(tag) > 5 {
		return RiotID{}, errors.NewValidationError("riot_id", raw, "tag line must be 2-5 characters")
	}

	return RiotID{GameName: name, TagLine: tag}, nil
}
