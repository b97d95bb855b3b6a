package service

import (
	"regexp"
	"strings"

	"similarity-service/internal/compare/model"
)

// Оставляем [a-z] и пробельные разделители; цифры, пунктуация и не-латиница
// выбрасываются. \p{Z} нужен, чтобы NBSP и прочие юникодные пробелы резали
// слова, а не склеивали их.
var nonWord = regexp.MustCompile(`[^a-z\s\p{Z}]+`)

// Для множества символов — только [a-z].
var nonChar = regexp.MustCompile(`[^a-z]+`)

// normalize приводит сырой текст к NormalizedText: lowercase → чистка →
// разбиение на слова + множество символов. Ошибок нет: любой вход, включая
// пустой, даёт валидное (возможно пустое) значение.
func normalize(s string) model.NormalizedText {
	lower := strings.ToLower(s)

	words := strings.Fields(nonWord.ReplaceAllString(lower, ""))
	wordSet := make(map[string]struct{}, len(words))
	for _, w := range words {
		wordSet[w] = struct{}{}
	}

	chars := make(map[rune]struct{})
	for _, r := range nonChar.ReplaceAllString(lower, "") {
		chars[r] = struct{}{}
	}

	return model.NormalizedText{Words: words, WordSet: wordSet, Chars: chars}
}
