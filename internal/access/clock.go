// Package access реализует единый вычислитель прав доступа: состояние
// жизненного цикла подписки, проверку ролей и фичефлагов, фильтрацию меню
// и протокол стадий route guard. Все функции пакета чистые: результат
// зависит только от аргументов и переданного времени.
package access

import "time"

// Clock источник текущего времени. Подменяется в тестах для
// детерминированной проверки граничных дат.
type Clock interface {
	Now() time.Time
}

// SystemClock возвращает системное время.
type SystemClock struct{}

// Now возвращает time.Now.
func (SystemClock) Now() time.Time {
	return time.Now()
}
