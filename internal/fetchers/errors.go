package fetchers

import "errors"

var (
	// ErrFetch marks a failure to retrieve or parse a CSV resource.
	ErrFetch = errors.New("failed to load data")
	// ErrEmptyDataset marks a dataset with no record left after validation.
	ErrEmptyDataset = errors.New("no valid records")
)
