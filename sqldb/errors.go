package sqldb

import "fmt"

// ErrUnsupported builds the error an engine dialect returns for an
// operation it has no native support for (e.g. backup on mysql).
func ErrUnsupported(op string, engine string) error {
	return fmt.Errorf("sqldb: %s not supported for %s", op, engine)
}
