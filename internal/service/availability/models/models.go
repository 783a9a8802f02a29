package models

import (
	"time"

	"github.com/finplanner/advisor-booking-service/internal/domain"
)

// Request модели

// AddWindowRequest запрос на добавление окна доступности
type AddWindowRequest struct {
	UserID       int64   `json:"userId"`
	AdvisorID    int64   `json:"advisorId"`
	Recurring    bool    `json:"recurring"`
	DayOfWeek    *int    `json:"dayOfWeek,omitempty"`    // 1-7, понедельник = 1, для recurring окон
	SpecificDate *string `json:"specificDate,omitempty"` // "2026-03-15", для разовых окон
	StartTime    string  `json:"startTime"`              // "09:00"
	EndTime      string  `json:"endTime"`                // "17:00"
}

// RemoveWindowRequest запрос на удаление окна доступности
type RemoveWindowRequest struct {
	UserID    int64 `json:"userId"`
	AdvisorID int64 `json:"advisorId"`
	WindowID  int64 `json:"windowId"`
}

// ListWindowsRequest запрос на получение окон доступности консультанта
type ListWindowsRequest struct {
	UserID    int64 `json:"userId"`
	AdvisorID int64 `json:"advisorId"`
}

// Response модели

// WindowResponse ответ с данными окна доступности
type WindowResponse struct {
	ID           int64   `json:"id"`
	AdvisorID    int64   `json:"advisorId"`
	Recurring    bool    `json:"recurring"`
	DayOfWeek    *int    `json:"dayOfWeek,omitempty"`
	SpecificDate *string `json:"specificDate,omitempty"` // "2026-03-15"
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WindowListResponse ответ со списком окон доступности
type WindowListResponse struct {
	Windows []WindowResponse `json:"windows"`
}

// Методы конвертации

// FromDomainWindow конвертирует domain модель в DTO
func FromDomainWindow(w *domain.AvailabilityWindow) *WindowResponse {
	if w == nil {
		return nil
	}

	resp := &WindowResponse{
		ID:        w.ID,
		AdvisorID: w.AdvisorID,
		Recurring: w.Recurring,
		StartTime: w.StartTime.String(),
		EndTime:   w.EndTime.String(),
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}

	if w.Recurring {
		day := w.DayOfWeek
		resp.DayOfWeek = &day
	} else if w.SpecificDate != nil {
		date := w.SpecificDate.Format(domain.DateFormat)
		resp.SpecificDate = &date
	}

	return resp
}

// FromDomainWindowList конвертирует список domain моделей в DTO
func FromDomainWindowList(windows []*domain.AvailabilityWindow) *WindowListResponse {
	result := &WindowListResponse{
		Windows: make([]WindowResponse, 0, len(windows)),
	}
	for _, w := range windows {
		if resp := FromDomainWindow(w); resp != nil {
			result.Windows = append(result.Windows, *resp)
		}
	}
	return result
}
