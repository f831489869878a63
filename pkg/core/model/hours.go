package model

import "regexp"

// numericPrefix matches the longest leading decimal number, so "2.5h" reads as 2.5
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
