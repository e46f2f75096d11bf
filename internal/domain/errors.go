package domain

import "errors"

var (
	ErrFileNotFound    = errors.New("input file does not exist")
	ErrUndecodableFile = errors.New("could not decode file with any supported encoding")
	ErrLineTooShort    = errors.New("record line too short")
	ErrUnknownSection  = errors.New("unknown section tag")
	ErrSchemaInvalid   = errors.New("schema definition is invalid")
	ErrUnknownFormat   = errors.New("unknown output format")
	ErrFileTooLarge    = errors.New("file exceeds maximum allowed size")
)
