package insurance

import "errors"

var (
	ErrNoBracketImport = errors.New("no insurance bracket table imported")
	ErrBracketNotFound = errors.New("insurance bracket level not found")
)
