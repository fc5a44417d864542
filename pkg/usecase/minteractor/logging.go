// 指示: miu200521358
package minteractor

import "github.com/miu200521358/mu_vrma_player/pkg/infra/mlogging"

// logMotionInfo はモーション処理のINFOログを出力する。
func logMotionInfo(format string, params ...any) {
	logger := mlogging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info().Msgf(format, params...)
}

// logMotionDebug はモーション処理のDEBUGログを出力する。
func logMotionDebug(format string, params ...any) {
	logger := mlogging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Debug().Msgf(format, params...)
}

// logMotionWarn はモーション処理の警告ログを出力する。
func logMotionWarn(format string, params ...any) {
	logger := mlogging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Warn().Msgf(format, params...)
}
