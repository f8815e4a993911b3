// Package exporter renders day-filtered unified wait-time records for
// download, as CSV or as an Excel workbook.
package exporter
