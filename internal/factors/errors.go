package factors

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrUnknownCategory indicates a category name or value outside the enumeration.
const ErrUnknownCategory = constError("unknown activity category")
