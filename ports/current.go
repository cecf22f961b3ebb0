package ports

// CurrentSource supplies the candidate value for one named variable from the
// current result document. A nil return with nil error never happens: a
// missing or non-numeric field is an error at this boundary, so the check
// core only ever sees a present value.
type CurrentSource interface {
	Current(variable string) (*float64, error)
}
