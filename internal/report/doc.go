// Package report renders analysis results for people and machines: JSON
// export documents on disk and rounded tables for the terminal.
package report
