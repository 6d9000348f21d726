package parse

import (
	"strings"

	"github.com/notyourtaha/Auto-Claim-Back-up/internal/message"
)

// Creature spawns are announced with an image; the name is never present in
// the text, so detection is a pure yes/no on two literal phrases and
// identification is deferred to the owner.
const (
	creatureHeader      = "A Wild Creature Has Appeared!"
	creatureInstruction = "Use *#catch <creature_name>*"
)

// Markers stamped on the owner notification. The manual catch command is
// only honoured as a direct reply to a message carrying both.
const (
	NoticeAppearedMark = "Wild Creature Appeared!"
	NoticeIdentifyMark = "I cannot automatically identify this creature."
)

// IsCreatureSpawn reports whether raw text is a creature spawn announcement.
func IsCreatureSpawn(raw string) bool {
	body := message.Normalize(raw)
	return strings.Contains(body, creatureHeader) && strings.Contains(body, creatureInstruction)
}
