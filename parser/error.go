package parser

// SyntaxError reports that parsing stopped before consuming the whole
// input. Offset is the byte offset at which the failure was detected. For
// an unterminated string or param literal, a malformed numeric literal or
// an unrecognised identifier it is the offset where that token starts, not
// the farthest offset the parser reached inside it. Adapted from the
// teacher's parser.Error wrapper, trimmed to the single field this
// single-line grammar needs (no Incomplete flag: there is no REPL
// continuation concept here).
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	if e == nil {
		return ""
	}
	return e.Msg
}

func newSyntaxError(offset int, msg string) *SyntaxError {
	return &SyntaxError{Offset: offset, Msg: msg}
}
