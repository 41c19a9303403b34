package override

import (
	"errors"
	"fmt"
)

// ShapeError reports arguments that fit no prototype of a known tag.
type ShapeError struct {
	Name string
	Args int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf(`\%s: no prototype takes %d argument(s)`, e.Name, e.Args)
}

// IsShapeError reports whether err is or wraps a ShapeError.
func IsShapeError(err error) bool {
	var se *ShapeError
	return errors.As(err, &se)
}
