package ports

import "time"

// Clock is the time source for placement timestamps and stage advancement.
type Clock interface {
	Now() time.Time
}
