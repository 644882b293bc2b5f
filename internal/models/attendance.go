package models

import "time"

// Activity описывает занятие (групповой класс, секцию), на которое
// записываются участники. Локальная копия справочника активностей.
type Activity struct {
	ID          string `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion,omitempty"`
}

// Attendance — запись о посещении занятия участником.
// Attended = false означает запись без фактического посещения.
type Attendance struct {
	ID         string    `json:"id"`
	MemberID   string    `json:"user_id"`
	ActivityID string    `json:"activity_id"`
	Date       time.Time `json:"fecha"`
	Attended   bool      `json:"asistio"`
}

// AttendedActivity — элемент истории посещений из локального хранилища:
// посещение, обогащённое данными занятия.
type AttendedActivity struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"fecha_asistencia"`
	Activity Activity  `json:"actividad"`
}

// ActivityHistory — результат агрегации посещений. Для локального источника
// Records упорядочены по дате по убыванию; для внешнего источника Details
// содержит полезные нагрузки внешнего сервиса занятий без гарантии порядка.
type ActivityHistory struct {
	Member  *Member            `json:"usuario,omitempty"`
	Records []AttendedActivity `json:"asistencias,omitempty"`
	Details []map[string]any   `json:"actividades,omitempty"`
	Total   int                `json:"total"`
}

// RemoteAttendance — строка ответа внешнего сервиса посещений.
// Фильтрация по asistio на стороне внешнего сервиса не гарантируется.
type RemoteAttendance struct {
	MemberID   string `json:"user_id"`
	ActivityID string `json:"activity_id"`
	Date       string `json:"fecha"`
	Attended   bool   `json:"asistio"`
}
