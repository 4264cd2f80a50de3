// Package console is the logging facade used across hobbit. Browser builds write to the
// JS console; every other build writes through zerolog.
package console

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

type Format string

const (
	TextFormat Format = "text"
	JSONFormat Format = "json"
)

// Config selects the minimum level and the output format.
type Config struct {
	Level  zerolog.Level `koanf:"level"  validate:"gte=-1,lte=5"`
	Format Format        `koanf:"format" validate:"omitempty,oneof=text json"`
}

// format joins args the way console.log does, separated by spaces.
func format(args []any) string {
	return strings.TrimSuffix(fmt.Sprintln(args...), "\n")
}
