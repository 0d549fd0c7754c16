package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
)

// ErrorKind は生成処理の失敗を呼び出し側が判別するための分類なのだ。
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInput
	KindCredential
	KindNetwork
	KindStatus
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindCredential:
		return "credential"
	case KindNetwork:
		return "network"
	case KindStatus:
		return "status"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

var (
	// ErrEmptyChoices は応答の choices が空だった場合のエラーです。
	ErrEmptyChoices = errors.New("response has no choices")
	// ErrEmptyContent は最初の choice の content が空だった場合のエラーです。
	ErrEmptyContent = errors.New("response content is empty")
)

// GenerationError は分類付きの生成エラーです。
// KindStatus の場合は StatusCode と Body (応答本文そのまま) が入るのだ。
type GenerationError struct {
	Kind       ErrorKind
	StatusCode int
	Body       string
	Err        error
}

func (e *GenerationError) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("API Error %d: %s", e.StatusCode, e.Body)
	}
	if e.Err == nil {
		return e.Kind.String() + " error"
	}
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// KindOf は任意のエラーを ErrorKind に分類します。
// GenerationError が含まれていればその Kind を、無ければ標準ライブラリのエラー型から推定するのだ。
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge.Kind
	}
	if errors.Is(err, ErrEmptyIdea) || errors.Is(err, ErrNoIdeas) {
		return KindInput
	}
	if errors.Is(err, ErrEmptyChoices) || errors.Is(err, ErrEmptyContent) {
		return KindMalformed
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindNetwork
	}
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return KindMalformed
	}
	// url.Error も io.EOF を包むことがあるので、net.Error を先に見るのだ
	var nerr net.Error
	if errors.As(err, &nerr) {
		return KindNetwork
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return KindMalformed
	}
	return KindUnknown
}
