package domain

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

var (
	ErrTreatmentPlanNotFound = fmt.Errorf("treatment plan %w", ErrNotFound)
	ErrUserPlanNotFound      = fmt.Errorf("user plan %w", ErrNotFound)
	ErrSuggestionNotFound    = fmt.Errorf("suggestion %w", ErrNotFound)

	ErrInvalidStatus = errors.New("invalid activity status")
)
