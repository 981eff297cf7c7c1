package phylink

type errGeneric uint8

// Errors common to PHY link management. Bus errors returned by an MDIO or
// register window implementation are never replaced by these.
const (
	_                errGeneric = iota // non-initialized err
	ErrTypeMismatch                    // PHY type mismatch
	ErrResetFailed                     // PHY reset polling failed to complete
	ErrInvalidAddr                     // invalid address
	ErrInvalidConfig                   // invalid configuration
	ErrShortBuffer                     // short buffer
	ErrUnsupported                     // unsupported
	ErrNoPHY                           // no PHY found
)

func (err errGeneric) Error() string {
	return err.String()
}
