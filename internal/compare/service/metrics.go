package service

import (
	"unicode/utf8"

	"similarity-service/internal/compare/model"
)

// characterSimilarity — |∩|/|∪| по множествам символов. Пустое множество с
// любой стороны даёт 0.0 (по соглашению, а не 0/0). Симметрична.
func characterSimilarity(a, b model.NormalizedText) float64 {
	if len(a.Chars) == 0 || len(b.Chars) == 0 {
		return 0.0
	}
	common := 0
	for r := range a.Chars {
		if _, ok := b.Chars[r]; ok {
			common++
		}
	}
	union := len(a.Chars) + len(b.Chars) - common
	return float64(common) / float64(union)
}

// jaccardIndex по множествам слов; два пустых текста максимально похожи (1.0).
func jaccardIndex(a, b model.NormalizedText) float64 {
	if len(a.WordSet) == 0 && len(b.WordSet) == 0 {
		return 1.0
	}
	common := sharedCount(a.WordSet, b.WordSet)
	union := len(a.WordSet) + len(b.WordSet) - common
	if union == 0 {
		return 0.0
	}
	return float64(common) / float64(union)
}

// wordOverlap — симметричный процент общих слов: 2·|shared|/(|s1|+|s2|)·100.
// Оба пустые → 100.0.
func wordOverlap(a, b model.NormalizedText) float64 {
	total := len(a.WordSet) + len(b.WordSet)
	if total == 0 {
		return 100.0
	}
	return float64(2*sharedCount(a.WordSet, b.WordSet)) / float64(total) * 100.0
}

// sizeDifference — |len1-len2| в рунах исходных строк. Это НЕ расстояние
// редактирования; поле в отчёте называется edit_distance исторически,
// семантику менять нельзя.
func sizeDifference(text1, text2 string) int {
	d := utf8.RuneCountInString(text1) - utf8.RuneCountInString(text2)
	if d < 0 {
		d = -d
	}
	return d
}

func sharedCount(s1, s2 map[string]struct{}) int {
	n := 0
	for w := range s1 {
		if _, ok := s2[w]; ok {
			n++
		}
	}
	return n
}
