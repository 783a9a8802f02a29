package domain

import "time"

// Advisor советник, принимающий консультации.
// Timezone - таймзона советника (IANA, например "Europe/Berlin"); окна
// доступности заданы в ней, а не в таймзоне сервера.
type Advisor struct {
	ID          int64
	UserID      int64
	DisplayName string
	Email       string
	Timezone    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location возвращает *time.Location советника
func (a *Advisor) Location() (*time.Location, error) {
	return time.LoadLocation(a.Timezone)
}
