// Package agecalc содержит календарную арифметику для производных полей
// участника: возраст в полных годах и стаж членства в полных месяцах.
package agecalc

import "time"

// Years возвращает количество полных лет между birthDate и now.
// Если годовщина в текущем году ещё не наступила, результат уменьшается
// на единицу.
func Years(birthDate, now time.Time) int {
	years := now.Year() - birthDate.Year()
	anniversary := time.Date(now.Year(), birthDate.Month(), birthDate.Day(),
		0, 0, 0, 0, now.Location())
	if now.Before(anniversary) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// Months возвращает количество полных месяцев между since и now.
// Используется для antiguedad_meses от даты записи в клуб.
func Months(since, now time.Time) int {
	months := (now.Year()-since.Year())*12 + int(now.Month()) - int(since.Month())
	if now.Day() < since.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
