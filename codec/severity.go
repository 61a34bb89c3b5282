package codec

import (
	"context"
	"strings"

	"github.com/reoring/gont"
	"github.com/reoring/gont/pvdata"
)

// AlarmSeverityName returns a Codec between severity names ("MINOR") and
// pvdata.AlarmSeverity. Names are matched case-insensitively.
func AlarmSeverityName() Codec[string, pvdata.AlarmSeverity] {
	return severityCodec{}
}

type severityCodec struct{}

func (severityCodec) Decode(_ context.Context, a string) (pvdata.AlarmSeverity, error) {
	for s := pvdata.NoAlarm; s <= pvdata.UndefinedAlarm; s++ {
		if strings.EqualFold(strings.TrimSpace(a), s.String()) {
			return s, nil
		}
	}
	return 0, gont.Issues{gont.Root().Issue(gont.CodeInvalidValue, "unknown alarm severity", "got", a)}
}

func (severityCodec) Encode(_ context.Context, b pvdata.AlarmSeverity) (string, error) {
	if b < pvdata.NoAlarm || b > pvdata.UndefinedAlarm {
		return "", gont.Issues{gont.Root().Issue(gont.CodeInvalidValue, "alarm severity out of range", "got", b.String())}
	}
	return b.String(), nil
}
