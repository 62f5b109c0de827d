package cli

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

const dateLayout = "2006-01-02"

// dateValue is a pflag.Value for an optional YYYY-MM-DD date in UTC. The
// target stays nil until the flag is set.
type dateValue struct {
	target **time.Time
}

var _ pflag.Value = dateValue{}

func newDateValue(target **time.Time) dateValue {
	return dateValue{target: target}
}

func (d dateValue) String() string {
	if d.target == nil || *d.target == nil {
		return ""
	}
	return (*d.target).Format(dateLayout)
}

func (d dateValue) Set(s string) error {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return fmt.Errorf("want YYYY-MM-DD: %w", err)
	}
	*d.target = &t
	return nil
}

func (d dateValue) Type() string { return "date" }
