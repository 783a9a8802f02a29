package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finplanner/advisor-booking-service/internal/domain"
	advisorRepo "github.com/finplanner/advisor-booking-service/internal/infra/storage/advisor"
	availabilityRepo "github.com/finplanner/advisor-booking-service/internal/infra/storage/availability"
	"github.com/finplanner/advisor-booking-service/internal/service/availability/models"
	"github.com/finplanner/advisor-booking-service/pkg/types"
)

// Service сервис управления окнами доступности консультанта
type Service struct {
	availabilityRepo AvailabilityRepository
	advisorRepo      AdvisorRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	availabilityRepo AvailabilityRepository,
	advisorRepo AdvisorRepository,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		advisorRepo:      advisorRepo,
		logger:           logger,
	}
}

// AddWindow добавляет окно доступности
// Доступно только самому консультанту
func (s *Service) AddWindow(ctx context.Context, req *models.AddWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("AddWindow: adding window for advisor=%d by user=%d", req.AdvisorID, req.UserID)

	if err := s.checkAdvisorAccess(ctx, req.AdvisorID, req.UserID); err != nil {
		return nil, err
	}

	window, err := buildWindow(req)
	if err != nil {
		s.logger.Warn("AddWindow: invalid window for advisor=%d: %v", req.AdvisorID, err)
		return nil, err
	}

	created, err := s.availabilityRepo.Create(ctx, window)
	if err != nil {
		s.logger.Error("AddWindow: repository error for advisor=%d: %v", req.AdvisorID, err)
		return nil, fmt.Errorf("%w: AddWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddWindow: successfully added window id=%d for advisor=%d", created.ID, req.AdvisorID)
	return models.FromDomainWindow(created), nil
}

// RemoveWindow удаляет окно доступности.
// Уже сделанные записи окно не трогает: они остаются в силе.
func (s *Service) RemoveWindow(ctx context.Context, req *models.RemoveWindowRequest) error {
	s.logger.Info("RemoveWindow: removing window id=%d for advisor=%d by user=%d",
		req.WindowID, req.AdvisorID, req.UserID)

	if err := s.checkAdvisorAccess(ctx, req.AdvisorID, req.UserID); err != nil {
		return err
	}

	if err := s.availabilityRepo.Delete(ctx, req.AdvisorID, req.WindowID); err != nil {
		if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			s.logger.Warn("RemoveWindow: window id=%d not found for advisor=%d", req.WindowID, req.AdvisorID)
			return ErrWindowNotFound
		}
		s.logger.Error("RemoveWindow: repository error for window id=%d: %v", req.WindowID, err)
		return fmt.Errorf("%w: RemoveWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveWindow: successfully removed window id=%d for advisor=%d", req.WindowID, req.AdvisorID)
	return nil
}

// ListWindows возвращает все окна доступности консультанта
// Доступно только самому консультанту
func (s *Service) ListWindows(ctx context.Context, req *models.ListWindowsRequest) (*models.WindowListResponse, error) {
	s.logger.Info("ListWindows: fetching windows for advisor=%d by user=%d", req.AdvisorID, req.UserID)

	if err := s.checkAdvisorAccess(ctx, req.AdvisorID, req.UserID); err != nil {
		return nil, err
	}

	windows, err := s.availabilityRepo.GetByAdvisor(ctx, req.AdvisorID)
	if err != nil {
		s.logger.Error("ListWindows: repository error for advisor=%d: %v", req.AdvisorID, err)
		return nil, fmt.Errorf("%w: ListWindows - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListWindows: successfully fetched %d windows for advisor=%d", len(windows), req.AdvisorID)
	return models.FromDomainWindowList(windows), nil
}

// Вспомогательные методы

// buildWindow валидирует запрос и собирает domain модель окна
func buildWindow(req *models.AddWindowRequest) (*domain.AvailabilityWindow, error) {
	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	endTime, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}

	// Начало окна строго раньше конца
	if !startTime.IsBefore(endTime) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidWindow)
	}

	window := &domain.AvailabilityWindow{
		AdvisorID: req.AdvisorID,
		StartTime: startTime,
		EndTime:   endTime,
		Recurring: req.Recurring,
	}

	if req.Recurring {
		if req.DayOfWeek == nil {
			return nil, fmt.Errorf("%w: dayOfWeek is required for recurring windows", ErrInvalidWindow)
		}
		if *req.DayOfWeek < 1 || *req.DayOfWeek > 7 {
			return nil, fmt.Errorf("%w: dayOfWeek must be in range 1-7", ErrInvalidWindow)
		}
		window.DayOfWeek = *req.DayOfWeek
		return window, nil
	}

	if req.SpecificDate == nil {
		return nil, fmt.Errorf("%w: specificDate is required for one-off windows", ErrInvalidWindow)
	}
	date, err := time.Parse(domain.DateFormat, *req.SpecificDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid specificDate: %v", ErrInvalidInput, err)
	}
	window.SpecificDate = &date

	return window, nil
}

// checkAdvisorAccess проверяет, что пользователь и есть консультант advisorID
func (s *Service) checkAdvisorAccess(ctx context.Context, advisorID int64, userID int64) error {
	advisor, err := s.advisorRepo.GetByID(ctx, advisorID)
	if err != nil {
		if errors.Is(err, advisorRepo.ErrAdvisorNotFound) {
			s.logger.Warn("checkAdvisorAccess: advisor id=%d not found", advisorID)
			return ErrAdvisorNotFound
		}
		s.logger.Error("checkAdvisorAccess: failed to get advisor id=%d: %v", advisorID, err)
		return fmt.Errorf("%w: checkAdvisorAccess - failed to get advisor: %v", ErrInternal, err)
	}

	if advisor.UserID != userID {
		s.logger.Warn("checkAdvisorAccess: user=%d is not advisor id=%d", userID, advisorID)
		return ErrAccessDenied
	}

	return nil
}
