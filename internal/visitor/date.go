package visitor

import (
	"time"

	"curator/internal/domain"
	dErrors "curator/pkg/domain-errors"
)

func parseDate(value string) (time.Time, error) {
	t, err := domain.ParseDate(value)
	if err != nil {
		return time.Time{}, dErrors.New(dErrors.CodeValidation, "invalid date format. Use YYYY-MM-DD")
	}
	return t, nil
}
