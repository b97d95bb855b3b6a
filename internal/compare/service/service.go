package service

import (
	"sort"
	"unicode/utf8"

	"similarity-service/internal/compare/model"
)

// Compare — основной конвейер сравнения: нормализация → метрики → diff слов →
// статистика. Чистая функция без I/O; семантическое обогащение (Gemini)
// подмешивается уровнем выше.
func Compare(text1, text2 string) model.Report {
	n1 := normalize(text1)
	n2 := normalize(text2)

	shared, only1, only2 := wordDiff(n1.WordSet, n2.WordSet)

	return model.Report{
		Scores: model.Scores{
			CosineSimilarity:    cosineSimilarity(text1, text2),
			JaccardIndex:        jaccardIndex(n1, n2),
			WordOverlap:         wordOverlap(n1, n2),
			CharacterSimilarity: characterSimilarity(n1, n2),
			EditDistance:        sizeDifference(text1, text2),
		},
		SharedWords: shared,
		UniqueText1: only1,
		UniqueText2: only2,
		Stats: model.Stats{
			Text1Words:       len(n1.Words),
			Text2Words:       len(n2.Words),
			Text1Chars:       utf8.RuneCountInString(text1),
			Text2Chars:       utf8.RuneCountInString(text2),
			TotalUniqueWords: len(n1.WordSet) + len(n2.WordSet) - sharedCount(n1.WordSet, n2.WordSet),
		},
	}
}

// wordDiff — общие и уникальные слова обеих сторон. Всегда отсортированы —
// для детерминированного вывода; пустые срезы вместо nil, чтобы в JSON
// уходил [], а не null.
func wordDiff(s1, s2 map[string]struct{}) (shared, only1, only2 []string) {
	shared = make([]string, 0)
	only1 = make([]string, 0)
	only2 = make([]string, 0)

	for w := range s1 {
		if _, ok := s2[w]; ok {
			shared = append(shared, w)
		} else {
			only1 = append(only1, w)
		}
	}
	for w := range s2 {
		if _, ok := s1[w]; !ok {
			only2 = append(only2, w)
		}
	}

	sort.Strings(shared)
	sort.Strings(only1)
	sort.Strings(only2)
	return shared, only1, only2
}
