package errors

import "fmt"

// Wrap prefixes err with msg and keeps err in the chain, so a caller can still
// match a sentinel from this package with errors.Is:
//
//	return errors.Wrap(errors.ErrConfigInvalidSchema, "schema.dir must not be empty")
//
// A nil err stays nil. Config loading wraps once per layer it reads; the
// executor never wraps, its failures are classified into a Result instead.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf is Wrap with a formatted message, for messages naming a config key or path.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
