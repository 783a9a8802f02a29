package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finplanner/advisor-booking-service/internal/domain"
	storageAdvisor "github.com/finplanner/advisor-booking-service/internal/infra/storage/advisor"
	storagePlan "github.com/finplanner/advisor-booking-service/internal/infra/storage/plan"
)

// UseCase use case для создания записи на консультацию
type UseCase struct {
	appointmentRepo AppointmentRepository
	advisorRepo     AdvisorRepository
	planRepo        PlanRepository
	queue           ProvisioningQueue
	notifier        NotifierClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	advisorRepo AdvisorRepository,
	planRepo PlanRepository,
	queue ProvisioningQueue,
	notifier NotifierClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		advisorRepo:     advisorRepo,
		planRepo:        planRepo,
		queue:           queue,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка конфликтов и вставка выполняются в одной сериализуемой
// транзакции, чтобы две конкурентные брони на один интервал не прошли обе.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, advisor=%d, date=%s, duration=%d, type=%s",
		req.UserID, req.AdvisorID, req.AppointmentDate.Format(time.RFC3339), req.DurationMinutes, req.SessionType)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем, что начало консультации не в прошлом
	if err := validateDate(req.AppointmentDate, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 4. Проверяем существование консультанта
	if _, err := uc.advisorRepo.GetByID(ctx, req.AdvisorID); err != nil {
		if errors.Is(err, storageAdvisor.ErrAdvisorNotFound) {
			uc.logger.Warn("CreateBooking: advisor id=%d not found", req.AdvisorID)
			return nil, ErrAdvisorNotFound
		}
		uc.logger.Error("CreateBooking: failed to get advisor id=%d: %v", req.AdvisorID, err)
		return nil, fmt.Errorf("%w: failed to get advisor: %v", ErrInternal, err)
	}

	// 5. Если пользователь открывает консультанту свой план, проверяем владение
	if req.SharedPlanID != nil {
		plan, err := uc.planRepo.GetByID(ctx, *req.SharedPlanID)
		if err != nil {
			if errors.Is(err, storagePlan.ErrPlanNotFound) {
				uc.logger.Warn("CreateBooking: plan id=%d not found", *req.SharedPlanID)
				return nil, ErrPlanNotFound
			}
			uc.logger.Error("CreateBooking: failed to get plan id=%d: %v", *req.SharedPlanID, err)
			return nil, fmt.Errorf("%w: failed to get plan: %v", ErrInternal, err)
		}
		if !plan.OwnedBy(req.UserID) {
			uc.logger.Warn("CreateBooking: plan id=%d is not owned by user id=%d", *req.SharedPlanID, req.UserID)
			return nil, ErrPlanNotOwned
		}
	}

	start := req.AppointmentDate.UTC()
	end := start.Add(time.Duration(req.DurationMinutes) * time.Minute)

	// Переменная для хранения результата
	var result *domain.Appointment

	// 6. Проверка конфликтов и вставка в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Получаем активные записи консультанта вокруг интервала.
		// Запас по краям покрывает записи максимальной длительности,
		// начавшиеся до запрошенного интервала.
		rangeStart := start.Add(-time.Duration(domain.ConflictSlackMinutes) * time.Minute)
		rangeEnd := end.Add(time.Duration(domain.ConflictSlackMinutes) * time.Minute)

		appointments, err := uc.appointmentRepo.GetByAdvisorWithFilter(txCtx, domain.AdvisorAppointmentsFilter{
			AdvisorID:  req.AdvisorID,
			RangeStart: &rangeStart,
			RangeEnd:   &rangeEnd,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 6.2. Проверяем доступность интервала
		check := checkConflicts(start, end, appointments)
		if !check.Available {
			uc.logger.Warn("CreateBooking: slot not available, %d conflicting appointment(s)", len(check.Conflicts))
			return ErrSlotUnavailable
		}

		// 6.3. Создаем запись сразу в статусе CONFIRMED
		appointment := &domain.Appointment{
			UserID:          req.UserID,
			AdvisorID:       req.AdvisorID,
			AppointmentDate: start,
			DurationMinutes: req.DurationMinutes,
			SessionType:     req.SessionType,
			Status:          domain.StatusConfirmed,
			BookingDate:     now.UTC(),
			SharedPlanID:    req.SharedPlanID,
			UserNotes:       req.UserNotes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created appointment id=%d", result.ID)

	// 7. Ставим задачу на создание встречи. Сбой очереди не отменяет бронь:
	// ссылку можно выдать позже через повторный provisioning.
	if err := uc.queue.Enqueue(ctx, result.ID, result.UserID); err != nil {
		uc.logger.Error("CreateBooking: failed to enqueue provisioning task for appointment id=%d: %v", result.ID, err)
	}

	// 8. Отправляем подтверждение. Сбой уведомления тоже не отменяет бронь.
	if err := uc.notifier.SendConfirmation(ctx, result); err != nil {
		uc.logger.Error("CreateBooking: failed to send confirmation for appointment id=%d: %v", result.ID, err)
	}

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		AdvisorID:       result.AdvisorID,
		AppointmentDate: result.AppointmentDate,
		DurationMinutes: result.DurationMinutes,
		SessionType:     string(result.SessionType),
		Status:          string(result.Status),
		MeetingLink:     result.MeetingLink,
		SharedPlanID:    result.SharedPlanID,
		UserNotes:       result.UserNotes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
