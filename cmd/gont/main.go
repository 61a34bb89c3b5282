package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	j "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/reoring/gont"
	"github.com/reoring/gont/codec"
	"github.com/reoring/gont/jsonschema"
	"github.com/reoring/gont/nt"
	"github.com/reoring/gont/ntspec"
	"github.com/reoring/gont/pvdata"
	"github.com/reoring/gont/pvjson"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "build":
		os.Exit(buildCmd(os.Args[2:]))
	case "check":
		os.Exit(checkCmd(os.Args[2:]))
	case "types":
		typesCmd()
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "gont CLI\n\nUsage:\n  gont build -f spec.yaml [-format text|introspect|jsonschema|instance]\n  gont check [-type NTTable] -f structure.json [-value value.json]\n  gont types")
}

func initLogger(verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Str("app", "gont").Logger()
}

func buildCmd(args []string) int {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	var file, format string
	var verbose bool
	fs.StringVar(&file, "f", "", "description file (.yaml, .yml or .toml)")
	fs.StringVar(&format, "format", "text", "output: text, introspect, jsonschema or instance")
	fs.BoolVar(&verbose, "v", false, "enable debug logs")
	_ = fs.Parse(args)
	initLogger(verbose)
	if file == "" {
		fs.Usage()
		return 2
	}

	spec, err := ntspec.LoadFile(file)
	if err != nil {
		log.Error().Err(err).Msg("load description")
		return 1
	}
	log.Debug().Str("path", file).Str("type", spec.Type).Msg("loaded description")
	pv, err := spec.PVStructure()
	if err != nil {
		printIssues(err)
		return 1
	}
	s := pv.Structure()

	var out []byte
	switch format {
	case "text":
		out = []byte(s.String())
	case "introspect":
		out, err = pvjson.MarshalIntrospection(s)
	case "jsonschema":
		var sc *jsonschema.Schema
		if sc, err = jsonschema.FromField(s); err == nil {
			out, err = j.MarshalIndent(sc, "", "  ")
		}
	case "instance":
		out, err = pvjson.MarshalValueIndent(pv, "", "  ")
	default:
		log.Error().Str("format", format).Msg("unknown output format")
		return 2
	}
	if err != nil {
		log.Error().Err(err).Str("format", format).Msg("render")
		return 1
	}
	fmt.Println(string(out))
	return 0
}

func checkCmd(args []string) int {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var file, typeName, valueFile string
	var failFast, verbose bool
	fs.StringVar(&file, "f", "", "structure introspection (JSON)")
	fs.StringVar(&typeName, "type", "", "normative type to check against (detected from the identifier when empty)")
	fs.StringVar(&valueFile, "value", "", "optional JSON value to decode into the structure")
	fs.BoolVar(&failFast, "fail-fast", false, "stop at the first issue")
	fs.BoolVar(&verbose, "v", false, "enable debug logs")
	_ = fs.Parse(args)
	initLogger(verbose)
	if file == "" {
		fs.Usage()
		return 2
	}

	data, err := os.ReadFile(file)
	if err != nil {
		log.Error().Err(err).Msg("read structure")
		return 1
	}
	s, err := pvjson.UnmarshalStructure(data)
	if err != nil {
		log.Error().Err(err).Str("path", file).Msg("decode structure")
		return 1
	}
	if typeName == "" {
		t, ok := nt.Detect(s)
		if !ok {
			log.Error().Str("id", s.ID()).Msg("no normative type with this identifier; pass -type")
			return 1
		}
		typeName = t.Name
		log.Debug().Str("type", t.Name).Msg("detected type")
	}
	if iss := nt.Check(typeName, s, gont.CheckOpt{FailFast: failFast}); len(iss) > 0 {
		printIssues(iss)
		return 1
	}
	if valueFile != "" {
		v, err := os.ReadFile(valueFile)
		if err != nil {
			log.Error().Err(err).Msg("read value")
			return 1
		}
		pv := pvdata.NewPVStructure(s)
		if err := pvjson.UnmarshalValue(v, pv); err != nil {
			printIssues(err)
			return 1
		}
		if err := describe(pv); err != nil {
			printIssues(err)
			return 1
		}
	}
	log.Info().Str("type", typeName).Msg("compatible")
	return 0
}

// describe logs the timeStamp and alarm of pv when present.
func describe(pv *pvdata.PVStructure) error {
	ctx := context.Background()
	var ts pvdata.PVTimeStamp
	if ts.Attach(pv.SubField("timeStamp")) {
		v, _ := ts.Get()
		at, err := codec.TimeStampRFC3339().Encode(ctx, v)
		if err != nil {
			if iss, ok := gont.AsIssues(err); ok {
				return iss.Under(gont.Root().Field("timeStamp"))
			}
			return err
		}
		log.Info().Str("timeStamp", at).Int32("userTag", v.UserTag).Msg("value")
	}
	var alarm pvdata.PVAlarm
	if alarm.Attach(pv.SubField("alarm")) {
		a, _ := alarm.Get()
		sev, err := codec.AlarmSeverityName().Encode(ctx, a.Severity)
		if err != nil {
			if iss, ok := gont.AsIssues(err); ok {
				return iss.Under(gont.Root().Field("alarm").Field("severity"))
			}
			return err
		}
		log.Info().Str("severity", sev).Str("message", a.Message).Msg("alarm")
	}
	return nil
}

func typesCmd() {
	for _, t := range nt.Types() {
		fmt.Printf("%-22s %s\n", t.Name, t.URI)
	}
}

func printIssues(err error) {
	iss, ok := gont.AsIssues(err)
	if !ok {
		log.Error().Err(err).Msg("failed")
		return
	}
	for _, it := range iss {
		fmt.Fprintf(os.Stderr, "%s\t%s\t%s\n", it.Path, it.Code, it.Message)
	}
}
