package provisioning

import "time"

// Task задача на выдачу ссылки на встречу для записи.
// Кладётся в Redis-список в виде JSON.
type Task struct {
	TaskID        string    `json:"taskId"`
	AppointmentID int64     `json:"appointmentId"`
	UserID        int64     `json:"userId"`
	Attempt       int       `json:"attempt"`
	EnqueuedAt    time.Time `json:"enqueuedAt"`
}
