// Package infra contains technical adapters such as the workbook reader,
// the model stores and metrics exporters. These packages should depend only
// on the interfaces defined in the core packages.
package infra
