package coverage

import "github.com/cockroachdb/errors"

// ErrReferenceData marks parsed batch data that is internally inconsistent,
// such as a branch that no statement of its batch covers.
var ErrReferenceData = errors.New("reference data error")
