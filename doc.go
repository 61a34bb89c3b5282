// Package gont provides:
//
// - Structural contracts for normative types (Contract, FieldRule) with a
// detailed diff (Check) and a boolean predicate (Compatible)
// - A stable error model via Issues (JSON Pointer, code, message)
// - Presence reports for optional members
//
// Design policy:
// - Keep contracts and the error model in the root package; the data layer
// lives in pvdata/, the normative types in nt/.
// - Encoders and loaders are separate packages (pvjson/, jsonschema/, codec/,
// ntspec/) and the CLI is under cmd/gont.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s := nt.NewScalarMultiChannelBuilder().Value(pvdata.Int).AddTimeStamp().CreateStructure()
//	if iss := nt.CheckScalarMultiChannel(s); len(iss) > 0 {
//		return iss
//	}
//	mc := nt.WrapScalarMultiChannel(pvdata.NewPVStructure(s))
package gont
