package diagnostic

import (
	"fmt"

	"mercator-hq/blocklint/pkg/bem/lint"
)

// Supported message locales.
const (
	LocaleEnglish = "en"
	LocaleRussian = "ru"
)

var catalogs = map[string]map[lint.RuleKey]string{
	LocaleEnglish: {
		lint.BlockNameIsRequired:       "Field named 'block' is required!",
		lint.UppercaseNamesIsForbidden: "Uppercase properties are forbidden!",

		lint.WarningTextSizes:       "All texts in a warning block must be the same size!",
		lint.WarningButtonSize:      "A button in a warning block must be one size larger than the text!",
		lint.WarningButtonPosition:  "A button in a warning block must come after the placeholder!",
		lint.WarningPlaceholderSize: "A placeholder in a warning block must be of size s, m or l!",

		lint.TextSeveralH1:         "The page must have only one h1 heading!",
		lint.TextInvalidH2Position: "An h2 heading must come after the h1 heading!",
		lint.TextInvalidH3Position: "An h3 heading must come after the h2 heading!",

		lint.GridTooMuchMarketingBlocks: "Marketing blocks must not take more than half of the grid columns!",
	},
	LocaleRussian: {
		lint.BlockNameIsRequired:       "Поле 'block' обязательно!",
		lint.UppercaseNamesIsForbidden: "Имена свойств в верхнем регистре запрещены!",

		lint.WarningTextSizes:       "Все тексты в блоке warning должны быть одного размера!",
		lint.WarningButtonSize:      "Размер кнопки в блоке warning должен быть на шаг больше размера текста!",
		lint.WarningButtonPosition:  "Кнопка в блоке warning должна располагаться после плейсхолдера!",
		lint.WarningPlaceholderSize: "Плейсхолдер в блоке warning должен иметь размер s, m или l!",

		lint.TextSeveralH1:         "На странице должен быть только один заголовок h1!",
		lint.TextInvalidH2Position: "Заголовок h2 должен следовать за заголовком h1!",
		lint.TextInvalidH3Position: "Заголовок h3 должен следовать за заголовком h2!",

		lint.GridTooMuchMarketingBlocks: "Маркетинговые блоки не должны занимать больше половины колонок грида!",
	},
}

var unknownProblem = map[string]string{
	LocaleEnglish: "Unknown problem type '%s'",
	LocaleRussian: "Неизвестный тип проблемы '%s'",
}

// Locales returns the supported locales.
func Locales() []string {
	return []string{LocaleEnglish, LocaleRussian}
}

// IsLocale reports whether locale has a message catalog.
func IsLocale(locale string) bool {
	_, ok := catalogs[locale]
	return ok
}

// Message returns the message for key. Unsupported locales fall back to English.
func Message(locale string, key lint.RuleKey) string {
	if !IsLocale(locale) {
		locale = LocaleEnglish
	}
	if msg, ok := catalogs[locale][key]; ok {
		return msg
	}
	return fmt.Sprintf(unknownProblem[locale], key)
}
