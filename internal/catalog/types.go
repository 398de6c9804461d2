package catalog

import "github.com/five82/stash/internal/fault"

// Item is one browsable catalog entry. Items are never mutated after a fetch;
// a new fetch replaces the whole list.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IconURL     string `json:"iconUrl"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

// ListResponse wraps the /api/catalog payload.
type ListResponse struct {
	Items []Item `json:"items"`
}

// Status identifies the active variant of a Result.
type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "loading"
	}
}

// Result is the outcome of one catalog fetch. Only the fields belonging to
// Status are meaningful: Items for StatusSuccess, Err for StatusError.
type Result struct {
	Status Status
	Items  []Item
	Err    error
}

// Loading returns the in-progress Result.
func Loading() Result {
	return Result{Status: StatusLoading}
}

// Success returns a terminal Result holding items.
func Success(items []Item) Result {
	return Result{Status: StatusSuccess, Items: items}
}

// Failure returns a terminal Result holding err.
func Failure(err error) Result {
	if err == nil {
		err = fault.New(fault.KindGeneric, "fetch catalog", errUnknown)
	}
	return Result{Status: StatusError, Err: err}
}

// Terminal reports whether r is a Success or an Error.
func (r Result) Terminal() bool {
	return r.Status != StatusLoading
}

// Reason returns the failure category of an Error result.
func (r Result) Reason() fault.Kind {
	return fault.KindOf(r.Err)
}
