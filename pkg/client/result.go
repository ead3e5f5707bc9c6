package client

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a failed result
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindNetwork
	KindTimeout
	KindClient // 4xx
	KindServer // 5xx
	KindStillReferenced
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindClient:
		return "client"
	case KindServer:
		return "server"
	case KindStillReferenced:
		return "still_referenced"
	default:
		return "unknown"
	}
}

// Result is the envelope every backend call returns. Status is 0 when the
// request never produced an HTTP response.
type Result[T any] struct {
	Data   *T
	Err    string
	Status int
	kind   ErrorKind
}

// OK returns true when the call succeeded
func (r Result[T]) OK() bool {
	return r.kind == KindNone && r.Err == ""
}

// Kind returns the failure class, KindNone on success
func (r Result[T]) Kind() ErrorKind {
	return r.kind
}

// Value returns the data or the zero value when absent
func (r Result[T]) Value() T {
	var zero T
	if r.Data == nil {
		return zero
	}
	return *r.Data
}

// NotFound returns true for a 404, which list endpoints use for "empty"
func (r Result[T]) NotFound() bool {
	return r.Status == 404
}

func failure[T any](status int, msg string, kind ErrorKind) Result[T] {
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", status)
	}
	return Result[T]{Err: msg, Status: status, kind: kind}
}

func kindForStatus(status int) ErrorKind {
	if status >= 500 {
		return KindServer
	}
	return KindClient
}

// As decodes a raw result into T. A body that cannot be decoded into T
// leaves Data nil; the status is kept and no error is reported.
func As[T any](r Result[Body]) Result[T] {
	out := Result[T]{Err: r.Err, Status: r.Status, kind: r.kind}
	if !r.OK() || r.Data == nil {
		return out
	}

	var v T
	if err := r.Data.Into(&v); err != nil {
		return out
	}
	out.Data = &v
	return out
}

// Map converts the data of a result, keeping status and error
func Map[A, B any](r Result[A], fn func(A) B) Result[B] {
	out := Result[B]{Err: r.Err, Status: r.Status, kind: r.kind}
	if r.Data != nil {
		v := fn(*r.Data)
		out.Data = &v
	}
	return out
}

// referentialKeywords mark a delete/update refused because other rows
// still point at the challenge
var referentialKeywords = []string{"constraint", "foreign key", "integrity"}

// markStillReferenced upgrades a 500 that mentions a referential
// constraint to KindStillReferenced
func markStillReferenced[T any](r Result[T]) Result[T] {
	if r.Status != 500 {
		return r
	}
	msg := strings.ToLower(r.Err)
	for _, kw := range referentialKeywords {
		if strings.Contains(msg, kw) {
			r.kind = KindStillReferenced
			return r
		}
	}
	return r
}
