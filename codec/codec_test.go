package codec_test

import (
	"context"
	"testing"
	"time"

	"github.com/reoring/gont"
	"github.com/reoring/gont/codec"
	"github.com/reoring/gont/pvdata"
)

func TestTimeStampRFC3339_Basic(t *testing.T) {
	c := codec.TimeStampRFC3339()
	ctx := context.Background()

	in := "2025-01-01T00:00:00.5Z"
	got, err := c.Decode(ctx, in)
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	want := pvdata.TimeStampFrom(time.Date(2025, 1, 1, 0, 0, 0, 500_000_000, time.UTC))
	if got != want {
		t.Fatalf("unexpected timestamp: %+v", got)
	}

	out, err := c.Encode(ctx, got)
	if err != nil {
		t.Fatalf("encode err: %v", err)
	}
	if out != in {
		t.Fatalf("roundtrip mismatch: %s != %s", out, in)
	}
}

func TestTimeStampRFC3339_Offset(t *testing.T) {
	c := codec.TimeStampRFC3339()
	got, err := c.Decode(context.Background(), "2025-01-01T09:00:00+09:00")
	if err != nil {
		t.Fatal(err)
	}
	if out, _ := c.Encode(context.Background(), got); out != "2025-01-01T00:00:00Z" {
		t.Fatalf("expected UTC output, got %s", out)
	}
}

func TestTimeStampRFC3339_Errors(t *testing.T) {
	c := codec.TimeStampRFC3339()
	ctx := context.Background()

	_, err := c.Decode(ctx, "yesterday")
	iss, ok := gont.AsIssues(err)
	if !ok || iss[0].Code != gont.CodeParseError {
		t.Fatalf("expected parse_error, got %v", err)
	}
	_, err = c.Encode(ctx, pvdata.TimeStampValue{Nanoseconds: 1_000_000_000})
	iss, ok = gont.AsIssues(err)
	if !ok || iss[0].Path != "/nanoseconds" || iss[0].Code != gont.CodeInvalidValue {
		t.Fatalf("expected invalid_value at /nanoseconds, got %v", err)
	}
}

func TestAlarmSeverityName(t *testing.T) {
	c := codec.AlarmSeverityName()
	ctx := context.Background()

	s, err := c.Decode(ctx, " minor ")
	if err != nil || s != pvdata.MinorAlarm {
		t.Fatalf("decode: %v %v", s, err)
	}
	if name, err := c.Encode(ctx, pvdata.InvalidAlarm); err != nil || name != "INVALID" {
		t.Fatalf("encode: %q %v", name, err)
	}
	if _, err := c.Decode(ctx, "FATAL"); err == nil {
		t.Fatalf("unknown name must fail")
	}
	if _, err := c.Encode(ctx, pvdata.AlarmSeverity(9)); err == nil {
		t.Fatalf("out of range severity must fail")
	}
}
