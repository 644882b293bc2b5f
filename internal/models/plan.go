package models

// Plan представляет тарифный план клуба. В рамках этого сервиса планы —
// неизменяемые справочные данные: они заводятся миграциями и читаются,
// но не редактируются через API.
type Plan struct {
	ID                 string  `json:"id"`
	Name               string  `json:"nombre"`
	Description        string  `json:"descripcion"`
	Price              float64 `json:"precio"`
	DurationDays       int     `json:"duracion_dias"`
	PoolAccess         bool    `json:"acceso_piscina"`
	GroupClassesAccess bool    `json:"acceso_clases_grupales"`
	TrainerAccess      bool    `json:"acceso_personal_trainer"`
}
