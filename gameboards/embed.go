// Package gameboards ships the built-in puzzle definitions.
//
// Each file is a board definition CSV; the grid size is the first number in
// the file name.
package gameboards

import "embed"

//go:embed *.csv
var FS embed.FS
