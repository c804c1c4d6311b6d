package upload

import "errors"

var (
	ErrUploadNotFound = errors.New("upload not found")
	ErrNotOwner       = errors.New("you are not the owner of this file")
	ErrInvalidKind    = errors.New("unknown upload kind")
	ErrWrongRole      = errors.New("role cannot upload this kind of file")
)
