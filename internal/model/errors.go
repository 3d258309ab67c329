package model

import "errors"

var (
	ErrScheduleNotFound  = errors.New("schedule not found")
	ErrMilestoneNotFound = errors.New("milestone not found")
)
