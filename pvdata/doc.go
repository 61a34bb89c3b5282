// Package pvdata is the structured data layer the normative types are built
// on.
//
// It has two halves:
//
//   - Introspection: immutable field descriptors (Scalar, ScalarArray,
//     Structure, StructureArray, Union) created directly or with a
//     FieldBuilder. A Structure is an ordered list of named fields plus an
//     identifier string.
//   - Data: mutable values (PVScalarOf, PVArrayOf, PVStructure,
//     PVStructureArray, PVUnion) that conform to exactly one introspection
//     descriptor. NewPVStructure allocates a zero-valued instance.
//
// Standard sub-structures (alarm_t, time_t, display_t, control_t, enum_t)
// are shared singletons; IsAlarm, IsTimeStamp and friends test whether an
// arbitrary field has one of those shapes. PVAlarm and PVTimeStamp attach to
// a conforming PVStructure and give typed access to it.
//
// Introspection values are safe for concurrent reads. Data values are not
// synchronized.
package pvdata
