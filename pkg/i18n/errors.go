package i18n

import "errors"

var (
	ErrInvalidFile    = errors.New("i18n: invalid catalog file")
	ErrNoCatalogs     = errors.New("i18n: no catalogs loaded")
	ErrMissingDefault = errors.New("i18n: default language has no catalog")
)
