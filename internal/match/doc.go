// Package match assigns each surviving asset file a canonical name.
//
// Resolution order, first success wins:
//
//  1. Catalog: the asset's base name is a catalog title.
//  2. Exact: the base name is itself a canonical name.
//  3. Fuzzy: indel similarity between normalized names, 0-100.
//
// Fuzzy candidates below the threshold are discarded. Among the rest, those
// accepted by the engine's RegionPredicate are preferred; ties go to the
// lexicographically smallest canonical name.
package match
