package domain

// IsValidBlock проверяет, что границы блока — корректные HH:MM и
// Start строго раньше End. Чистый предикат без побочных эффектов
func IsValidBlock(b TimeBlock) bool {
	return b.Start.IsValid() && b.End.IsValid() && b.Start.IsBefore(b.End)
}

// BlocksOverlap строгий тест пересечения полуинтервалов: блоки
// пересекаются, только если разделяют хотя бы один момент времени.
// Соприкосновение границами (a.End == b.Start) пересечением не считается
func BlocksOverlap(a, b TimeBlock) bool {
	return !(a.End.IsBefore(b.Start) || a.End == b.Start ||
		a.Start.IsAfter(b.End) || a.Start == b.End)
}

// overlapsAny проверяет пересечение блока с любым элементом списка
func overlapsAny(block TimeBlock, blocks []TimeBlock) bool {
	for _, b := range blocks {
		if BlocksOverlap(block, b) {
			return true
		}
	}
	return false
}
