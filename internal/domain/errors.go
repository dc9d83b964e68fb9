package domain

import "errors"

// ErrNotFound намеренно покрывает и "записи нет", и "запись есть, но у
// вызывающего нет к ней никакого отношения" — ответы должны быть неотличимы.
var (
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("insufficient permission")
	ErrRecipientNotFound    = errors.New("recipient not found")
	ErrSelfShare            = errors.New("cannot share with yourself")
	ErrDuplicateActiveShare = errors.New("active share already exists for this recipient")
	ErrInvalidScope         = errors.New("selective share requires at least one task id")
)
