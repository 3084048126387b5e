// Package twiki reads a TWiki data tree: it discovers topic files, maps
// them to MoinMoin topic names, decodes their text and extracts the
// attachment list from their metadata.
package twiki
