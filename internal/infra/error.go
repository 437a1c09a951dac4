package infra

import (
	"errors"

	"escrow-market/internal/pkg/errs"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

func NewRepoErr(kind RepositoryErrorKind, msg string) error {
	return RepositoryError{Kind: kind, msg: msg}
}

func WrapRepoErr(kind RepositoryErrorKind, msg string, err error) error {
	if err != nil {
		err = errs.Wrap(err, msg)
	}
	return RepositoryError{Kind: kind, msg: msg, err: err}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Infrastructure-specific error kinds
const (
	KindNotFound          RepositoryErrorKind = "NOT_FOUND"
	KindDuplicateKey      RepositoryErrorKind = "DUPLICATE_KEY"
	KindNotAuthorized     RepositoryErrorKind = "NOT_AUTHORIZED"
	KindInsufficientFunds RepositoryErrorKind = "INSUFFICIENT_FUNDS"
	KindTransferRejected  RepositoryErrorKind = "TRANSFER_REJECTED"
	KindStorageFailure    RepositoryErrorKind = "STORAGE_FAILURE"
)
