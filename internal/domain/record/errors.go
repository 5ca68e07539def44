package record

import "errors"

var (
	ErrRecordNotFound     = errors.New("record not found")
	ErrScreenshotNotFound = errors.New("record has no screenshot")
)
