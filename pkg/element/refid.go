package element

import (
	"strings"

	"github.com/google/uuid"
)

// NewRefID returns a random 32-character uppercase hexadecimal GUID, the
// form SIF uses for RefId and SIF_MsgId values.
func NewRefID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}
