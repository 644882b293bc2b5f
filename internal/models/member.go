// Package models содержит доменные структуры тренажёрного зала:
// участники (members), тарифные планы и посещения занятий,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import (
	"time"

	"github.com/gymhub/members-api/internal/lib/agecalc"
)

// Member представляет зарегистрированного участника фитнес-клуба.
// Поля плана (PlanID и даты) равны nil, пока участнику не назначен тариф.
// Age и MembershipMonths — производные значения, вычисляются при чтении
// и никогда не хранятся в базе.
type Member struct {
	ID               string     `json:"id"`
	Name             string     `json:"nombre"`
	Surname          string     `json:"apellido"`
	DNI              string     `json:"dni"`
	Email            string     `json:"correo_electronico"`
	BirthDate        time.Time  `json:"fecha_nacimiento"`
	Age              int        `json:"edad"`
	Phone            string     `json:"telefono,omitempty"`
	HasHealthRisks   bool       `json:"enfermedades_base"`
	Profession       string     `json:"profesion,omitempty"`
	RegistrationDate time.Time  `json:"fecha_inscripcion"`
	MembershipMonths int        `json:"antiguedad_meses"`
	PlanID           *string    `json:"plan_id"`
	PlanContractedAt *time.Time `json:"fecha_plan_contratado"`
	PlanExpiresAt    *time.Time `json:"fecha_caducidad_plan"`
}

// Derive пересчитывает производные поля (edad, antiguedad_meses)
// на момент now. Вызывается на каждом чтении и записи, чтобы значения
// не устаревали в хранилище.
func (m *Member) Derive(now time.Time) {
	m.Age = agecalc.Years(m.BirthDate, now)
	m.MembershipMonths = agecalc.Months(m.RegistrationDate, now)
}

// DummyMember используется для приёма данных из JSON-запроса на создание
// участника, прежде чем конвертировать их в Member.
// Дата рождения приходит строкой, чтобы её можно было валидировать
// и парсить вручную.
type DummyMember struct {
	Name           string `json:"nombre" validate:"required"`
	Surname        string `json:"apellido" validate:"required"`
	DNI            string `json:"dni" validate:"required"`
	Email          string `json:"correo_electronico" validate:"required,email"`
	BirthDate      string `json:"fecha_nacimiento" validate:"required"` // формат 2006-01-02
	Phone          string `json:"telefono,omitempty" validate:"omitempty"`
	HasHealthRisks bool   `json:"enfermedades_base,omitempty"`
	Profession     string `json:"profesion,omitempty" validate:"omitempty"`
}

// MemberPatch описывает частичное обновление участника.
// Каждое поле опционально: nil означает "не трогать".
// Поля идентификатора и плана здесь отсутствуют намеренно —
// id неизменяем, а план меняется только операцией назначения плана.
type MemberPatch struct {
	Name           *string `json:"nombre,omitempty" validate:"omitempty,min=1"`
	Surname        *string `json:"apellido,omitempty" validate:"omitempty,min=1"`
	DNI            *string `json:"dni,omitempty" validate:"omitempty,min=1"`
	Email          *string `json:"correo_electronico,omitempty" validate:"omitempty,email"`
	BirthDate      *string `json:"fecha_nacimiento,omitempty" validate:"omitempty"`
	Phone          *string `json:"telefono,omitempty"`
	HasHealthRisks *bool   `json:"enfermedades_base,omitempty"`
	Profession     *string `json:"profesion,omitempty"`
}

// IsEmpty сообщает, что патч не несёт ни одного поля.
func (p MemberPatch) IsEmpty() bool {
	return p.Name == nil && p.Surname == nil && p.DNI == nil &&
		p.Email == nil && p.BirthDate == nil && p.Phone == nil &&
		p.HasHealthRisks == nil && p.Profession == nil
}

// MemberPlanView — сокращённое представление участника для запроса
// "какой у него план". Поля плана сериализуются явными null,
// если не установлены, и никогда не опускаются.
type MemberPlanView struct {
	Name             string     `json:"nombre"`
	PlanID           *string    `json:"plan_id"`
	PlanContractedAt *time.Time `json:"fecha_plan_contratado"`
	PlanExpiresAt    *time.Time `json:"fecha_caducidad_plan"`
}

// MemberWithPlan — участник вместе с полными данными назначенного плана,
// результат операции назначения (read-join вместо голого plan_id).
type MemberWithPlan struct {
	Member
	Plan *Plan `json:"plan"`
}
