package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/finplanner/advisor-booking-service/internal/domain"
	appointmentRepo "github.com/finplanner/advisor-booking-service/internal/infra/storage/appointment"
	advisorRepo "github.com/finplanner/advisor-booking-service/internal/infra/storage/advisor"
	"github.com/finplanner/advisor-booking-service/internal/service/appointments/models"
)

// Service сервис жизненного цикла записей на консультации
type Service struct {
	appointmentRepo AppointmentRepository
	advisorRepo     AdvisorRepository
	queue           ProvisioningQueue
	notifier        NotifierClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	advisorRepo AdvisorRepository,
	queue ProvisioningQueue,
	notifier NotifierClient,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		advisorRepo:     advisorRepo,
		queue:           queue,
		notifier:        notifier,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Доступ имеют владелец записи и консультант, к которому она относится
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appointment, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(ctx, appointment, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainAppointment(appointment), nil
}

// GetUserAppointments получает историю записей пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserAppointments(ctx context.Context, req *models.GetUserAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetUserAppointments: fetching appointments for user=%d, status=%v", req.UserID, req.Status)

	var statusFilter *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserAppointments: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		statusFilter = &status
	}

	appointments, err := s.appointmentRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		s.logger.Error("GetUserAppointments: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %v", ErrInternal, err)
	}

	if statusFilter != nil {
		filtered := appointments[:0]
		for _, a := range appointments {
			if a.Status == *statusFilter {
				filtered = append(filtered, a)
			}
		}
		appointments = filtered
	}

	s.logger.Info("GetUserAppointments: successfully fetched %d appointments for user=%d", len(appointments), req.UserID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetAdvisorAppointments получает записи консультанта с гибкой фильтрацией
// Доступно только самому консультанту
func (s *Service) GetAdvisorAppointments(ctx context.Context, req *models.GetAdvisorAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetAdvisorAppointments: fetching appointments for advisor=%d, user=%d", req.AdvisorID, req.UserID)

	if err := s.checkAdvisorAccess(ctx, req.AdvisorID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetAdvisorAppointments: invalid filter for advisor=%d: %v", req.AdvisorID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByAdvisorWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetAdvisorAppointments: repository error for advisor=%d: %v", req.AdvisorID, err)
		return nil, fmt.Errorf("%w: GetAdvisorAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAdvisorAppointments: successfully fetched %d appointments for advisor=%d", len(appointments), req.AdvisorID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись на консультацию.
// Повторная отмена - no-op: статус не меняется, уведомление не шлётся повторно.
// Отменить могут владелец записи и консультант.
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", appointmentID, req.UserID)

	appointment, err := s.getAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}

	if err := s.checkAccess(ctx, appointment, req.UserID); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to appointment id=%d", req.UserID, appointmentID)
		return err
	}

	// Уже отменена - идемпотентный успех
	if appointment.Status == domain.StatusCancelled {
		s.logger.Info("Cancel: appointment id=%d is already cancelled, nothing to do", appointmentID)
		return nil
	}

	if !appointment.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, appointment.Status)
		return ErrCannotCancel
	}

	if err := s.appointmentRepo.Cancel(ctx, appointmentID, req.CancellationReason); err != nil {
		// Гонка с параллельной отменой: строка уже в статусе CANCELLED
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Info("Cancel: appointment id=%d was cancelled concurrently", appointmentID)
			return nil
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Уведомление об отмене. Сбой не откатывает отмену.
	appointment.Status = domain.StatusCancelled
	if err := s.notifier.SendCancellation(ctx, appointment); err != nil {
		s.logger.Error("Cancel: failed to send cancellation notification for appointment id=%d: %v", appointmentID, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", appointmentID)
	return nil
}

// UpdateStatus переводит запись в новый статус с проверкой допустимости перехода.
// CANCELLED идёт через Cancel (идемпотентная отмена с уведомлением),
// CONFIRMED и COMPLETED доступны только консультанту.
func (s *Service) UpdateStatus(ctx context.Context, appointmentID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by user=%d",
		appointmentID, req.Status, req.UserID)

	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, appointmentID)
		return fmt.Errorf("%w: invalid status", ErrInvalidStatus)
	}

	// Отмена обрабатывается отдельной веткой: у неё свои правила идемпотентности
	if newStatus == domain.StatusCancelled {
		reason := ""
		if req.CancellationReason != nil {
			reason = *req.CancellationReason
		}
		return s.Cancel(ctx, appointmentID, &models.CancelAppointmentRequest{
			UserID:             req.UserID,
			CancellationReason: reason,
		})
	}

	appointment, err := s.getAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}

	// Подтверждение и завершение - операции консультанта
	if err := s.checkAdvisorAccess(ctx, appointment.AdvisorID, req.UserID); err != nil {
		s.logger.Warn("UpdateStatus: access denied for user=%d to appointment id=%d", req.UserID, appointmentID)
		return err
	}

	if !appointment.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: invalid transition %s -> %s for appointment id=%d",
			appointment.Status, newStatus, appointmentID)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, newStatus)
	}

	// Завершить можно только прошедшую консультацию
	if newStatus == domain.StatusCompleted && !appointment.HasEnded(s.timeProvider.Now()) {
		s.logger.Warn("UpdateStatus: appointment id=%d has not ended yet", appointmentID)
		return ErrNotFinishedYet
	}

	// Повторное подтверждение: статус уже CONFIRMED, обновлять нечего,
	// но без ссылки на встречу переигрываем provisioning и подтверждение
	if newStatus == domain.StatusConfirmed && appointment.Status == domain.StatusConfirmed {
		if !appointment.HasMeetingLink() {
			if err := s.queue.Enqueue(ctx, appointment.ID, appointment.UserID); err != nil {
				s.logger.Error("UpdateStatus: failed to re-enqueue provisioning for appointment id=%d: %v", appointmentID, err)
			}
			if err := s.notifier.SendConfirmation(ctx, appointment); err != nil {
				s.logger.Error("UpdateStatus: failed to send confirmation for appointment id=%d: %v", appointmentID, err)
			}
		}
		return nil
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, newStatus); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found during update", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Переход в CONFIRMED запускает provisioning и подтверждение
	if newStatus == domain.StatusConfirmed {
		if err := s.queue.Enqueue(ctx, appointment.ID, appointment.UserID); err != nil {
			s.logger.Error("UpdateStatus: failed to enqueue provisioning for appointment id=%d: %v", appointmentID, err)
		}
		appointment.Status = domain.StatusConfirmed
		if err := s.notifier.SendConfirmation(ctx, appointment); err != nil {
			s.logger.Error("UpdateStatus: failed to send confirmation for appointment id=%d: %v", appointmentID, err)
		}
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", appointmentID, newStatus)
	return nil
}

// AddAdvisorNotes сохраняет заметки консультанта по записи
// Доступно только консультанту, к которому относится запись
func (s *Service) AddAdvisorNotes(ctx context.Context, appointmentID int64, req *models.AdvisorNotesRequest) error {
	s.logger.Info("AddAdvisorNotes: adding notes to appointment id=%d by user=%d", appointmentID, req.UserID)

	if req.Notes == "" {
		return fmt.Errorf("%w: notes are required", ErrInvalidInput)
	}
	if len(req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	appointment, err := s.getAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}

	if err := s.checkAdvisorAccess(ctx, appointment.AdvisorID, req.UserID); err != nil {
		s.logger.Warn("AddAdvisorNotes: access denied for user=%d to appointment id=%d", req.UserID, appointmentID)
		return err
	}

	if err := s.appointmentRepo.SetAdvisorNotes(ctx, appointmentID, req.Notes); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("AddAdvisorNotes: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: AddAdvisorNotes - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddAdvisorNotes: successfully added notes to appointment id=%d", appointmentID)
	return nil
}

// RetryProvisioning переигрывает выдачу ссылок для активных записей пользователя
// без ссылки на встречу. Вызывается после завершения OAuth-авторизации календаря.
// Возвращает количество поставленных задач.
func (s *Service) RetryProvisioning(ctx context.Context, userID int64) (int, error) {
	s.logger.Info("RetryProvisioning: re-enqueueing provisioning tasks for user=%d", userID)

	appointments, err := s.appointmentRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("RetryProvisioning: repository error for user=%d: %v", userID, err)
		return 0, fmt.Errorf("%w: RetryProvisioning - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	enqueued := 0

	for _, a := range appointments {
		if !a.IsActive() || a.HasMeetingLink() || a.HasEnded(now) {
			continue
		}
		if err := s.queue.Enqueue(ctx, a.ID, a.UserID); err != nil {
			s.logger.Error("RetryProvisioning: failed to enqueue appointment id=%d: %v", a.ID, err)
			continue
		}
		enqueued++
	}

	s.logger.Info("RetryProvisioning: enqueued %d task(s) for user=%d", enqueued, userID)
	return enqueued, nil
}

// Вспомогательные методы

func (s *Service) getAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("getAppointment: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("getAppointment: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getAppointment - repository error: %v", ErrInternal, err)
	}
	return appointment, nil
}

// checkAccess проверяет, что пользователь имеет доступ к записи:
// либо он её владелец, либо он тот самый консультант
func (s *Service) checkAccess(ctx context.Context, appointment *domain.Appointment, userID int64) error {
	if appointment.UserID == userID {
		return nil
	}

	if err := s.checkAdvisorAccess(ctx, appointment.AdvisorID, userID); err != nil {
		return ErrAccessDenied
	}

	return nil
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
