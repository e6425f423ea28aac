// Package encoding provides the alternate compact encoding `show` can emit
// alongside its default JSON output.
package encoding

import (
	toon "github.com/toon-format/toon-go"

	"github.com/torrust/tracker-deployer/internal/core/entities"
)

// EncodeEnvironmentTOON renders env in the compact TOON format, the same
// struct tags encoding/json uses for field names.
func EncodeEnvironmentTOON(env entities.Environment) ([]byte, error) {
	return toon.Marshal(env)
}
