package services

import "errors"

// Option errors
var (
	ErrOutputOverwritesInput = errors.New("output path would overwrite an input file")
	ErrSameOutputPath        = errors.New("two outputs share the same path")
)
