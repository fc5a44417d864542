// 指示: miu200521358
package io_common

import (
	"errors"
	"fmt"
)

const (
	// ErrorIDFileNotFound はファイル未検出のエラーID。
	ErrorIDFileNotFound = "14101"
	// ErrorIDExtInvalid は拡張子不正のエラーID。
	ErrorIDExtInvalid = "14102"
	// ErrorIDParseFailed は解析失敗のエラーID。
	ErrorIDParseFailed = "14103"
	// ErrorIDFormatNotSupported は未対応形式のエラーID。
	ErrorIDFormatNotSupported = "14104"
)

// IoError はエラーIDを持つ入出力エラーを表す。
type IoError struct {
	ID      string
	Message string
	Cause   error
}

// Error はエラーメッセージを返す。
func (e *IoError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("[%s] %s", e.ID, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %v", e.ID, e.Message, e.Cause)
}

// Unwrap は原因エラーを返す。
func (e *IoError) Unwrap() error {
	return e.Cause
}

// NewIoFileNotFound はファイル未検出エラーを生成する。
func NewIoFileNotFound(path string, cause error) error {
	return &IoError{ID: ErrorIDFileNotFound, Message: fmt.Sprintf("ファイルが見つかりません: %s", path), Cause: cause}
}

// NewIoExtInvalid は拡張子不正エラーを生成する。
func NewIoExtInvalid(path string, cause error) error {
	return &IoError{ID: ErrorIDExtInvalid, Message: fmt.Sprintf("拡張子が不正です: %s", path), Cause: cause}
}

// NewIoParseFailed は解析失敗エラーを生成する。
func NewIoParseFailed(format string, cause error, params ...any) error {
	return &IoError{ID: ErrorIDParseFailed, Message: fmt.Sprintf(format, params...), Cause: cause}
}

// NewIoFormatNotSupported は未対応形式エラーを生成する。
func NewIoFormatNotSupported(format string, cause error, params ...any) error {
	return &IoError{ID: ErrorIDFormatNotSupported, Message: fmt.Sprintf(format, params...), Cause: cause}
}

// ExtractErrorID はエラー連鎖から最初の入出力エラーIDを取り出す。
func ExtractErrorID(err error) string {
	var ioErr *IoError
	if errors.As(err, &ioErr) {
		return ioErr.ID
	}
	return ""
}
