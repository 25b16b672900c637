package domain

import "errors"

type FaultKind int

const (
	// ClientFault: the store rejected the caller's input.
	ClientFault FaultKind = iota + 1
	// ServerFault: the store could not serve the request.
	ServerFault
)

// Fault tags a store error with the side it is blamed on. Error() is the
// store message unchanged so it can be handed back to the caller as is.
type Fault struct {
	Kind FaultKind
	Op   string
	Err  error
}

func (f *Fault) Error() string {
	if f.Err == nil {
		return f.Op + " failed"
	}
	return f.Err.Error()
}

func (f *Fault) Unwrap() error { return f.Err }

func NewClientFault(op string, err error) error { return &Fault{Kind: ClientFault, Op: op, Err: err} }
func NewServerFault(op string, err error) error { return &Fault{Kind: ServerFault, Op: op, Err: err} }

// KindOf reports the fault kind carried by err, or 0 if none.
func KindOf(err error) FaultKind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return 0
}
