package notifications

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"equimanage-server/internal/domain/compliance"
	"equimanage-server/internal/domain/horses"
	"equimanage-server/internal/domain/profiles"
	"equimanage-server/internal/platform/logger"
	"equimanage-server/internal/ports/auth"
	"equimanage-server/internal/ports/email"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// defaultWorkers acota el paralelismo del chequeo diario. Entre dueños
// no hay estado compartido; la idempotencia por dueño la garantiza la
// clave única del repo, no este límite.
const defaultWorkers = 4

type Service struct {
	repo      Repository
	horses    *horses.Service
	profiles  *profiles.Service
	directory auth.Directory
	sender    email.Sender
	log       logger.Logger

	now     func() time.Time
	workers int
}

func NewService(
	repo Repository,
	horsesSvc *horses.Service,
	profilesSvc *profiles.Service,
	directory auth.Directory,
	sender email.Sender,
	log logger.Logger,
) *Service {
	return &Service{
		repo:      repo,
		horses:    horsesSvc,
		profiles:  profilesSvc,
		directory: directory,
		sender:    sender,
		log:       log,
		now:       time.Now,
		workers:   defaultWorkers,
	}
}

// NotifyVaccinationDue aplica el diff contra el conjunto de ya
// notificados y envía un único correo con los fallos nuevos (más el
// contexto de todos los actuales). Devuelve cuántos fallos nuevos se
// registraron.
//
// Solo el insert en el repo marca una condición como notificada: un
// fallo de envío posterior se registra y se asume (riesgo conocido de
// escritura-al-menos-una-vez / correo-como-mucho-una-vez; son
// recordatorios de baja frecuencia, no garantías transaccionales).
func (s *Service) NotifyVaccinationDue(ctx context.Context, ownerID, ownerEmail, ownerName string, items []VaccDueNotice) (int, error) {
	if strings.TrimSpace(ownerID) == "" {
		return 0, ErrInvalidInput
	}
	if len(items) == 0 || strings.TrimSpace(ownerEmail) == "" {
		return 0, nil
	}

	newItems := make([]VaccDueNotice, 0)
	for _, item := range items {
		k := VaccKey{
			OwnerID:  ownerID,
			HorseID:  item.HorseID,
			Type:     item.Type,
			Sequence: item.Sequence,
		}
		inserted, err := s.repo.InsertVaccIfAbsent(ctx, k)
		if err != nil {
			// Sin insert no hay marca de notificado: el siguiente run
			// lo reintenta.
			s.log.Warn("vaccination notification insert failed", map[string]any{
				"owner_id": ownerID,
				"horse_id": item.HorseID,
				"error":    err.Error(),
			})
			continue
		}
		if inserted {
			newItems = append(newItems, item)
		}
	}

	if len(newItems) == 0 {
		return 0, nil
	}

	msg := composeVaccEmail(ownerEmail, ownerName, newItems, items)
	if err := s.send(ctx, msg); err != nil {
		s.log.Warn("vaccination due email failed", map[string]any{
			"owner_id": ownerID,
			"new":      len(newItems),
			"error":    err.Error(),
		})
	} else {
		s.log.Info("vaccination due email sent", map[string]any{
			"owner_id": ownerID,
			"new":      len(newItems),
		})
	}

	return len(newItems), nil
}

// NotifyHoofDue es el mismo diff sobre avisos de herrador, con clave
// (dueño, caballo, estado): la escalada a rojo vuelve a avisar.
func (s *Service) NotifyHoofDue(ctx context.Context, ownerID, ownerEmail, ownerName string, items []HoofDueNotice) (int, error) {
	if strings.TrimSpace(ownerID) == "" {
		return 0, ErrInvalidInput
	}
	if len(items) == 0 || strings.TrimSpace(ownerEmail) == "" {
		return 0, nil
	}

	newItems := make([]HoofDueNotice, 0)
	for _, item := range items {
		k := HoofKey{
			OwnerID: ownerID,
			HorseID: item.HorseID,
			Status:  item.Status,
		}
		inserted, err := s.repo.InsertHoofIfAbsent(ctx, k)
		if err != nil {
			s.log.Warn("hoof notification insert failed", map[string]any{
				"owner_id": ownerID,
				"horse_id": item.HorseID,
				"error":    err.Error(),
			})
			continue
		}
		if inserted {
			newItems = append(newItems, item)
		}
	}

	if len(newItems) == 0 {
		return 0, nil
	}

	msg := composeHoofEmail(ownerEmail, ownerName, newItems, items)
	if err := s.send(ctx, msg); err != nil {
		s.log.Warn("hoof due email failed", map[string]any{
			"owner_id": ownerID,
			"new":      len(newItems),
			"error":    err.Error(),
		})
	} else {
		s.log.Info("hoof due email sent", map[string]any{
			"owner_id": ownerID,
			"new":      len(newItems),
		})
	}

	return len(newItems), nil
}

// CheckOwner recalcula los fallos de un dueño y dispara ambos
// notificadores según sus flags. Lo invocan por igual el endpoint
// interactivo y el cron: el differ no sabe quién lo llama.
func (s *Service) CheckOwner(ctx context.Context, owner profiles.Profile, ownerEmail string, asOf time.Time) (vaccSent, hoofSent int, err error) {
	if !owner.NotifyVaccination && !owner.NotifyHoof {
		return 0, 0, nil
	}

	list, err := s.horses.ListByOwner(ctx, owner.ID)
	if err != nil {
		return 0, 0, err
	}
	if len(list) == 0 {
		return 0, 0, nil
	}

	vaccItems, hoofItems := CollectDueNotices(list, asOf)

	if owner.NotifyVaccination {
		n, err := s.NotifyVaccinationDue(ctx, owner.ID, ownerEmail, owner.DisplayName(), vaccItems)
		if err != nil {
			return 0, 0, err
		}
		vaccSent = n
	}
	if owner.NotifyHoof {
		n, err := s.NotifyHoofDue(ctx, owner.ID, ownerEmail, owner.DisplayName(), hoofItems)
		if err != nil {
			return vaccSent, 0, err
		}
		hoofSent = n
	}
	return vaccSent, hoofSent, nil
}

// RunDailyChecks recorre todos los dueños con avisos activados.
// Los dueños se procesan en un pool acotado; el fallo de uno no
// aborta la pasada. Re-ejecutar es un no-op para lo ya notificado.
func (s *Service) RunDailyChecks(ctx context.Context, asOf time.Time) (Report, error) {
	owners, err := s.profiles.ListOwnersWithNotifications(ctx)
	if err != nil {
		return Report{}, err
	}

	var (
		mu     sync.Mutex
		report = Report{OwnersChecked: len(owners)}
		wg     sync.WaitGroup
		sem    = make(chan struct{}, s.workers)
	)

	for _, owner := range owners {
		wg.Add(1)
		sem <- struct{}{}
		go func(owner profiles.Profile) {
			defer wg.Done()
			defer func() { <-sem }()

			ownerEmail, err := s.ownerEmail(ctx, owner.ID)
			if err != nil || strings.TrimSpace(ownerEmail) == "" {
				s.log.Warn("owner email unavailable, skipping", map[string]any{
					"owner_id": owner.ID,
				})
				return
			}

			vacc, hoof, err := s.CheckOwner(ctx, owner, ownerEmail, asOf)
			if err != nil {
				s.log.Warn("daily check failed for owner", map[string]any{
					"owner_id": owner.ID,
					"error":    err.Error(),
				})
				return
			}

			mu.Lock()
			report.VaccSent += vacc
			report.HoofSent += hoof
			mu.Unlock()
		}(owner)
	}
	wg.Wait()

	s.log.Info("daily due checks finished", map[string]any{
		"owners_checked": report.OwnersChecked,
		"vacc_sent":      report.VaccSent,
		"hoof_sent":      report.HoofSent,
	})
	return report, nil
}

// send tolera un sender sin configurar: el aviso queda registrado
// como notificado igualmente (mismo riesgo asumido que un fallo de
// envío).
func (s *Service) send(ctx context.Context, m email.Message) error {
	if s.sender == nil {
		return errors.New("email sender not configured")
	}
	return s.sender.Send(ctx, m)
}

func (s *Service) ownerEmail(ctx context.Context, ownerID string) (string, error) {
	if s.directory == nil {
		return "", errors.New("user directory not configured")
	}
	return s.directory.EmailByUserID(ctx, ownerID)
}

// CollectDueNotices proyecta la salida del motor de conformidad al
// formato de aviso, por caballo.
func CollectDueNotices(list []horses.Horse, asOf time.Time) ([]VaccDueNotice, []HoofDueNotice) {
	vaccItems := make([]VaccDueNotice, 0)
	hoofItems := make([]HoofDueNotice, 0)

	for _, h := range list {
		res := compliance.CheckVaccination(h, asOf)
		for _, di := range res.DueItems {
			vaccItems = append(vaccItems, VaccDueNotice{
				HorseID:   h.ID,
				HorseName: h.Name,
				Type:      di.Type,
				Sequence:  di.Sequence,
				Status:    di.Status,
				Message:   di.Message,
			})
		}

		hoof := compliance.CheckHoofCare(h, asOf)
		if hoof.Status != compliance.StatusGreen {
			hoofItems = append(hoofItems, HoofDueNotice{
				HorseID:   h.ID,
				HorseName: h.Name,
				Status:    hoof.Status,
				DaysSince: hoof.DaysSince,
				Message:   compliance.HoofMessage(hoof),
			})
		}
	}
	return vaccItems, hoofItems
}
