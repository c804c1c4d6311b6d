package lesson

import "errors"

var (
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrAnswerCountMismatch = errors.New("number of answers doesn't match number of questions")
)
