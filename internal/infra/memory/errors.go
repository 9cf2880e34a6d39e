package memory

import "errors"

// ErrNoQuestions is returned when a static source has nothing matching a request.
var ErrNoQuestions = errors.New("no questions match the request")
