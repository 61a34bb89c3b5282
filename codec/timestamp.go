package codec

import (
	"context"
	"strconv"
	"time"

	"github.com/reoring/gont"
	"github.com/reoring/gont/pvdata"
)

// TimeStampRFC3339 returns a Codec between RFC3339 strings and time_t
// content. Decoded values carry a zero user tag.
func TimeStampRFC3339() Codec[string, pvdata.TimeStampValue] {
	return rfc3339Codec{}
}

type rfc3339Codec struct{}

func (rfc3339Codec) Decode(_ context.Context, a string) (pvdata.TimeStampValue, error) {
	t, err := parseRFC3339(a)
	if err != nil {
		return pvdata.TimeStampValue{}, gont.Issues{gont.Root().Issue(gont.CodeParseError, "invalid RFC3339 time", "got", a)}
	}
	return pvdata.TimeStampFrom(t), nil
}

func (rfc3339Codec) Encode(_ context.Context, b pvdata.TimeStampValue) (string, error) {
	if b.Nanoseconds < 0 || b.Nanoseconds >= int32(time.Second) {
		return "", gont.Issues{gont.Root().Field("nanoseconds").Issue(gont.CodeInvalidValue, "nanoseconds out of range", "got", strconv.Itoa(int(b.Nanoseconds)))}
	}
	// trailing zeros are trimmed by RFC3339Nano
	return b.Time().UTC().Format(time.RFC3339Nano), nil
}

func parseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}
