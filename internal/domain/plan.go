package domain

import "time"

// PlanRef ссылка на финансовый план пользователя.
// Сам план (цели, распределение активов, PDF) живёт в другом сервисе;
// здесь хранится только то, что нужно для проверки доступа при шаринге.
type PlanRef struct {
	ID        int64
	UserID    int64
	PlanName  string
	CreatedAt time.Time
}

// OwnedBy возвращает true, если план принадлежит пользователю
func (p *PlanRef) OwnedBy(userID int64) bool {
	return p.UserID == userID
}
