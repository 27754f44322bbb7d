package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"clinica_xpto/internal/domain/entities"
	"clinica_xpto/internal/domain/lead"
	"clinica_xpto/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrLeadNotFound    = errors.New("lead not found")
	ErrInvalidLeadID   = errors.New("invalid lead id")
	ErrInvalidClinicID = errors.New("invalid clinic id")
	ErrInvalidLead     = errors.New("invalid lead")
)

// LeadCommand is an intake-quiz submission already scored by the classifier.
type LeadCommand struct {
	ClinicID     string
	Name         string
	Phone        string
	Email        string
	AIScore      int
	AIUrgency    string
	KanbanStatus string
	Answers      []entities.QuizAnswer
}

// ILeadUseCase exposes lead intake and the clinic thresholds it depends on.

type ILeadUseCase interface {
	Create(ctx context.Context, cmd LeadCommand) (entities.Lead, error)
	GetByID(ctx context.Context, id string) (entities.Lead, error)
	GetThresholds(ctx context.Context, clinicID string) (entities.LeadThresholds, error)
	UpdateThresholds(ctx context.Context, clinicID string, t entities.LeadThresholds) (entities.LeadThresholds, error)
}

type LeadUseCase struct {
	repo     interfaces.ILeadRepository
	settings interfaces.IClinicSettingsRepository
	defaults entities.LeadThresholds
}

var _ ILeadUseCase = (*LeadUseCase)(nil)

func NewLeadUseCase(repo interfaces.ILeadRepository, settings interfaces.IClinicSettingsRepository) *LeadUseCase {
	return &LeadUseCase{repo: repo, settings: settings, defaults: defaultThresholdsFromEnv()}
}

// Create persists the lead as classified upstream, then runs a single
// best-effort calibration. A failed corrective update is logged and the
// lead is returned with its original stage.
func (u *LeadUseCase) Create(ctx context.Context, cmd LeadCommand) (entities.Lead, error) {
	l, err := buildLead(cmd)
	if err != nil {
		log.Printf("[lead][usecase] create rejected clinic_id=%s err=%v", cmd.ClinicID, err)
		return entities.Lead{}, err
	}

	created, err := u.repo.Create(ctx, l)
	if err != nil {
		log.Printf("[lead][usecase] repository create failed lead_id=%s err=%v", l.ID, err)
		return entities.Lead{}, err
	}
	log.Printf("[lead][usecase] created lead_id=%s clinic_id=%s score=%d urgency=%s status=%s",
		created.ID, created.ClinicID, created.AIScore, created.AIUrgency, created.KanbanStatus)

	return u.calibrate(ctx, created), nil
}

func (u *LeadUseCase) calibrate(ctx context.Context, l entities.Lead) entities.Lead {
	thresholds := u.thresholdsOrDefault(ctx, l.ClinicID)
	current := lead.NormalizeStatus(l.KanbanStatus)
	next := lead.CalibrateStatus(l.AIScore, l.AIUrgency, thresholds, current)
	if next == current {
		return l
	}

	log.Printf("[lead][calibration] correcting lead_id=%s from=%s to=%s", l.ID, l.KanbanStatus, next)
	updated, err := u.repo.UpdateStatus(ctx, l.ID, next)
	if err != nil {
		log.Printf("[lead][calibration] corrective update failed lead_id=%s err=%v", l.ID, err)
		return l
	}
	if updated.ID == "" {
		log.Printf("[lead][calibration] lead vanished before correction lead_id=%s", l.ID)
		return l
	}
	return updated
}

func (u *LeadUseCase) thresholdsOrDefault(ctx context.Context, clinicID string) entities.LeadThresholds {
	if u.settings == nil {
		return u.defaults
	}
	t, found, err := u.settings.GetLeadThresholds(ctx, clinicID)
	if err != nil {
		log.Printf("[lead][calibration] thresholds lookup failed clinic_id=%s err=%v; using defaults", clinicID, err)
		return u.defaults
	}
	if !found || !t.Valid() {
		return u.defaults
	}
	return t
}

func buildLead(cmd LeadCommand) (entities.Lead, error) {
	clinicID := strings.TrimSpace(cmd.ClinicID)
	if clinicID == "" {
		return entities.Lead{}, ErrInvalidClinicID
	}
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return entities.Lead{}, fmt.Errorf("%w: name is required", ErrInvalidLead)
	}
	if cmd.AIScore < 0 || cmd.AIScore > 100 {
		return entities.Lead{}, fmt.Errorf("%w: ai_score must be between 0 and 100", ErrInvalidLead)
	}
	urgency, ok := lead.ParseUrgency(cmd.AIUrgency)
	if !ok {
		return entities.Lead{}, fmt.Errorf("%w: unknown ai_urgency %q", ErrInvalidLead, cmd.AIUrgency)
	}
	for _, a := range cmd.Answers {
		if err := lead.ValidateAnswer(a); err != nil {
			return entities.Lead{}, fmt.Errorf("%w: %v", ErrInvalidLead, err)
		}
	}

	status := entities.KanbanFrio
	if raw := strings.TrimSpace(cmd.KanbanStatus); raw != "" {
		parsed, ok := lead.ParseStatus(raw)
		if !ok {
			return entities.Lead{}, fmt.Errorf("%w: unknown kanban_status %q", ErrInvalidLead, cmd.KanbanStatus)
		}
		status = parsed
	}

	now := time.Now().UTC()
	return entities.Lead{
		ID:           uuid.NewString(),
		ClinicID:     clinicID,
		Name:         name,
		Phone:        strings.TrimSpace(cmd.Phone),
		Email:        strings.TrimSpace(cmd.Email),
		AIScore:      cmd.AIScore,
		AIUrgency:    urgency,
		KanbanStatus: status,
		Answers:      cmd.Answers,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (u *LeadUseCase) GetByID(ctx context.Context, id string) (entities.Lead, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Lead{}, ErrInvalidLeadID
	}

	l, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Lead{}, err
	}
	if l.ID == "" {
		return entities.Lead{}, ErrLeadNotFound
	}
	return l, nil
}

func (u *LeadUseCase) GetThresholds(ctx context.Context, clinicID string) (entities.LeadThresholds, error) {
	clinicID = strings.TrimSpace(clinicID)
	if clinicID == "" {
		return entities.LeadThresholds{}, ErrInvalidClinicID
	}
	t, found, err := u.settings.GetLeadThresholds(ctx, clinicID)
	if err != nil {
		return entities.LeadThresholds{}, err
	}
	if !found {
		return u.defaults, nil
	}
	if !t.Valid() {
		log.Printf("[lead][usecase] stored thresholds invalid clinic_id=%s frio_max=%d morno_max=%d quente_max=%d; using defaults", clinicID, t.FrioMax, t.MornoMax, t.QuenteMax)
		return u.defaults, nil
	}
	return t, nil
}

func (u *LeadUseCase) UpdateThresholds(ctx context.Context, clinicID string, t entities.LeadThresholds) (entities.LeadThresholds, error) {
	clinicID = strings.TrimSpace(clinicID)
	if clinicID == "" {
		return entities.LeadThresholds{}, ErrInvalidClinicID
	}
	if err := lead.ValidateThresholds(t); err != nil {
		return entities.LeadThresholds{}, err
	}
	if err := u.settings.SaveLeadThresholds(ctx, clinicID, t); err != nil {
		log.Printf("[lead][usecase] save thresholds failed clinic_id=%s err=%v", clinicID, err)
		return entities.LeadThresholds{}, err
	}
	log.Printf("[lead][usecase] thresholds saved clinic_id=%s frio_max=%d morno_max=%d quente_max=%d", clinicID, t.FrioMax, t.MornoMax, t.QuenteMax)
	return t, nil
}

// defaultThresholdsFromEnv reads LEAD_DEFAULT_FRIO_MAX, LEAD_DEFAULT_MORNO_MAX
// and LEAD_DEFAULT_QUENTE_MAX, falling back to lead.DefaultThresholds when
// any value is missing or the set is inconsistent.
func defaultThresholdsFromEnv() entities.LeadThresholds {
	t := lead.DefaultThresholds
	t.FrioMax = envInt("LEAD_DEFAULT_FRIO_MAX", t.FrioMax)
	t.MornoMax = envInt("LEAD_DEFAULT_MORNO_MAX", t.MornoMax)
	t.QuenteMax = envInt("LEAD_DEFAULT_QUENTE_MAX", t.QuenteMax)
	if !t.Valid() {
		log.Printf("[lead][usecase] invalid default thresholds from env %+v; using built-in defaults", t)
		return lead.DefaultThresholds
	}
	return t
}

func envInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
