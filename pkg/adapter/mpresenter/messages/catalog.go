// 指示: miu200521358
package messages

import (
	"fmt"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// SupportedLanguages は対応言語一覧を表す。先頭が既定言語。
var SupportedLanguages = []language.Tag{language.Japanese, language.English}

var (
	catalogOnce    sync.Once
	sharedCatalog  *catalog.Builder
	catalogInitErr error
)

// Catalog は日英の翻訳カタログを返す。
func Catalog() (catalog.Catalog, error) {
	catalogOnce.Do(func() {
		sharedCatalog, catalogInitErr = buildCatalog()
	})
	if catalogInitErr != nil {
		return nil, catalogInitErr
	}
	return sharedCatalog, nil
}

// buildCatalog は翻訳カタログを構築する。
func buildCatalog() (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.Japanese))
	for key, en := range englishMessages {
		if err := b.SetString(language.Japanese, key, key); err != nil {
			return nil, fmt.Errorf("日本語メッセージの登録に失敗しました: %s: %w", key, err)
		}
		if err := b.SetString(language.English, key, en); err != nil {
			return nil, fmt.Errorf("英語メッセージの登録に失敗しました: %s: %w", key, err)
		}
	}
	return b, nil
}

// Localizer は言語別のメッセージ整形を表す。
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// NewLocalizer は言語コードからLocalizerを生成する。
func NewLocalizer(lang string) (*Localizer, error) {
	tag, err := MatchLanguage(lang)
	if err != nil {
		return nil, err
	}
	cat, err := Catalog()
	if err != nil {
		return nil, err
	}
	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(cat)),
	}, nil
}

// MatchLanguage は言語コードを対応言語へ解決する。
func MatchLanguage(lang string) (language.Tag, error) {
	if lang == "" {
		return SupportedLanguages[0], nil
	}
	parsed, err := language.Parse(lang)
	if err != nil {
		return language.Und, fmt.Errorf("言語コードが不正です: %s: %w", lang, err)
	}
	matcher := language.NewMatcher(SupportedLanguages)
	_, index, confidence := matcher.Match(parsed)
	if confidence == language.No {
		return language.Und, fmt.Errorf("未対応の言語です: %s", lang)
	}
	return SupportedLanguages[index], nil
}

// Language は解決済み言語を返す。
func (l *Localizer) Language() language.Tag {
	if l == nil {
		return SupportedLanguages[0]
	}
	return l.tag
}

// T はメッセージキーを翻訳して整形する。
func (l *Localizer) T(key string, params ...any) string {
	if l == nil || l.printer == nil {
		return fmt.Sprintf(key, params...)
	}
	return l.printer.Sprintf(key, params...)
}
