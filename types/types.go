// Package types defines core type constraints and shared vocabulary used across the join engine.
//
// This package provides foundational types such as SignedNumber, which restricts generic
// operations to signed numeric types, Relationship, which describes bounding-box relationships
// between geometric entities, Predicates, the DE-9IM-flavoured bit-set the pair checker reports,
// and GeomType, which tags the five on-disk geometry variants.
//
// # Key Features
//
//   - SignedNumber Interface: Defines a type set that includes all signed integer and floating-point types,
//     ensuring that geometric operations remain compatible with various numeric representations.
//   - Relationship Enum: Encapsulates the bounding-box relationship between two boxes, such as containment,
//     intersection, or equality.
//   - Predicates Bit-set: Encodes the set of DE-9IM-flavoured relations (intersects, contains, covers,
//     touches, equals, overlaps, crosses) a pair of geometries can simultaneously satisfy.
//
// # Usage
//
// This package is used internally across the join engine's packages to enable type safety and
// consistency. Functions and structures throughout the module rely on these types to enforce
// correct input parameters and return meaningful results.
//
// See the documentation for each type for more details.
package types
