// Package nt implements the normative types NTScalarMultiChannel, NTTable
// and NTNDArray on top of pvdata.
//
// Each type comes with three pieces:
//
//   - a builder (NewScalarMultiChannelBuilder, NewTableBuilder,
//     NewNDArrayBuilder) that assembles the structure, a zero valued
//     instance of it, or a wrapper around such an instance. A builder forgets
//     its settings after every Create* call.
//   - a contract (ScalarMultiChannelContract, ...) with the Check, IsCompatible
//     and IsA helpers built on it. Mandatory members must exist with the
//     exact shape; optional members are only checked when present; members
//     the contract does not name are ignored.
//   - a wrapper (WrapScalarMultiChannel, ...) exposing typed handles resolved
//     once when it is created. Wrap returns nil for an incompatible instance;
//     the Unsafe variants skip the check.
//
// Lookup and Detect resolve a type by name, URI or structure identifier.
package nt
