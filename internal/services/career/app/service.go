// Package app hosts career runs on top of durable storage.
//
// Every operation follows the same cycle: load the character snapshot,
// resume its run with the persisted dice state, apply one engine call,
// save the new snapshot and append an audit row. A rejected call leaves
// the stored record untouched.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/servicerecord/internal/core/dice"
	"github.com/louisbranch/servicerecord/internal/platform/id"
	"github.com/louisbranch/servicerecord/internal/platform/logger"
	"github.com/louisbranch/servicerecord/internal/platform/otel"
	"github.com/louisbranch/servicerecord/internal/random"
	"github.com/louisbranch/servicerecord/internal/services/career/audit"
	"github.com/louisbranch/servicerecord/internal/services/career/storage"
	"github.com/louisbranch/servicerecord/internal/systems/traveller/domain"
	"github.com/louisbranch/servicerecord/internal/systems/traveller/engine"
	"github.com/louisbranch/servicerecord/internal/systems/traveller/snapshot"
)

const tracerName = "github.com/louisbranch/servicerecord/internal/services/career/app"

// Options configures a Service. Zero values pick production defaults.
type Options struct {
	// DeathRule is applied to characters created by the service.
	DeathRule bool
	Clock     func() time.Time
	// Seed returns the dice seed of a new character.
	Seed   func() int64
	NewID  func() (string, error)
	Tracer trace.Tracer
}

// Service runs career operations against a store.
type Service struct {
	store     storage.Store
	audit     *audit.Emitter
	log       *logger.Logger
	tracer    trace.Tracer
	deathRule bool
	clock     func() time.Time
	seed      func() int64
	newID     func() (string, error)
}

// NewService creates a career service.
func NewService(store storage.Store, log *logger.Logger, opts Options) *Service {
	if log == nil {
		log = logger.Nop()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	seed := opts.Seed
	if seed == nil {
		seed = func() int64 { return random.SeedOrNow(clock) }
	}
	newID := opts.NewID
	if newID == nil {
		newID = id.NewID
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return &Service{
		store:     store,
		audit:     audit.NewEmitter(store),
		log:       log.With("service", "career"),
		tracer:    tracer,
		deathRule: opts.DeathRule,
		clock:     clock,
		seed:      seed,
		newID:     newID,
	}
}

// Outcome pairs the result of one operation with the record it saved and
// the audit row it appended.
type Outcome[T any] struct {
	Record    snapshot.Record
	Result    T
	Operation storage.Operation
}

// Create rolls a new character and stores it.
func (s *Service) Create(ctx context.Context) (snapshot.Record, error) {
	ctx, span := s.tracer.Start(ctx, "career.create")
	defer span.End()

	charID, err := s.newID()
	if err != nil {
		return snapshot.Record{}, failSpan(span, fmt.Errorf("new character id: %w", err))
	}
	src := dice.NewSource(s.seed())
	run := engine.New(src, engine.Options{DeathRule: s.deathRule})
	record := snapshot.New(charID, run.Character(), src.State())
	if err := s.save(ctx, record); err != nil {
		return snapshot.Record{}, failSpan(span, err)
	}
	s.emit(ctx, record, "create", 0, record.Character.UPP(), record.Character)
	span.SetAttributes(attribute.String("character.id", charID))
	s.log.Info("character created",
		"id", charID,
		"name", record.Character.Name,
		"upp", record.Character.UPP(),
		"seed", record.Dice.Seed,
	)
	return record, nil
}

// Import stores a record produced by snapshot.Encode, replacing any
// character with the same ID.
func (s *Service) Import(ctx context.Context, data []byte, format snapshot.Format) (snapshot.Record, error) {
	ctx, span := s.tracer.Start(ctx, "career.import")
	defer span.End()

	record, err := snapshot.Decode(data, format)
	if err != nil {
		return snapshot.Record{}, failSpan(span, err)
	}
	if err := s.save(ctx, record); err != nil {
		return snapshot.Record{}, failSpan(span, err)
	}
	s.emit(ctx, record, "import", termOf(record.Character), string(format), nil)
	span.SetAttributes(attribute.String("character.id", record.ID))
	s.log.Info("character imported", "id", record.ID, "format", format)
	return record, nil
}

// Get returns a stored character. An empty id selects the most recently
// updated one.
func (s *Service) Get(ctx context.Context, charID string) (snapshot.Record, error) {
	ctx, span := s.tracer.Start(ctx, "career.get")
	defer span.End()

	record, err := s.load(ctx, charID)
	if err != nil {
		return snapshot.Record{}, failSpan(span, err)
	}
	return record, nil
}

// Export encodes a stored character in format.
func (s *Service) Export(ctx context.Context, charID string, format snapshot.Format) ([]byte, error) {
	record, err := s.Get(ctx, charID)
	if err != nil {
		return nil, err
	}
	return snapshot.Encode(record, format)
}

// Delete removes a character and its history.
func (s *Service) Delete(ctx context.Context, charID string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "career.delete")
	defer span.End()

	resolved, err := s.resolveID(ctx, charID)
	if err != nil {
		return "", failSpan(span, err)
	}
	if err := s.store.DeleteCharacter(ctx, resolved); err != nil {
		return "", failSpan(span, err)
	}
	s.log.Info("character deleted", "id", resolved)
	return resolved, nil
}

// Operations returns the audit history of a character.
func (s *Service) Operations(ctx context.Context, charID string) ([]storage.Operation, error) {
	ctx, span := s.tracer.Start(ctx, "career.operations")
	defer span.End()

	resolved, err := s.resolveID(ctx, charID)
	if err != nil {
		return nil, failSpan(span, err)
	}
	ops, err := s.audit.History(ctx, resolved)
	if err != nil {
		return nil, failSpan(span, err)
	}
	return ops, nil
}

// Enlist attempts to join the named service.
func (s *Service) Enlist(ctx context.Context, charID, careerName string) (Outcome[engine.EnlistOutcome], error) {
	career, err := domain.ParseCareer(careerName)
	if err != nil {
		return Outcome[engine.EnlistOutcome]{}, err
	}
	return operate(ctx, s, charID, "enlist",
		func(r *engine.Run) (engine.EnlistOutcome, error) { return r.Enlist(career) },
		func(out engine.EnlistOutcome) string {
			return fmt.Sprintf("%s %s", out.Result.Status, out.Result.Career)
		})
}

// Reveal shows one characteristic of a character that has not enlisted yet.
func (s *Service) Reveal(ctx context.Context, charID, name string) (Outcome[engine.RevealOutcome], error) {
	ch, err := domain.ParseCharacteristic(name)
	if err != nil {
		return Outcome[engine.RevealOutcome]{}, err
	}
	return operate(ctx, s, charID, "reveal",
		func(r *engine.Run) (engine.RevealOutcome, error) { return r.Reveal(ch) },
		func(out engine.RevealOutcome) string {
			return fmt.Sprintf("%s %d", out.Characteristic, out.Value)
		})
}

// Survive resolves the survival roll of the current term.
func (s *Service) Survive(ctx context.Context, charID string) (Outcome[domain.SurvivalResult], error) {
	return operate(ctx, s, charID, "survive",
		func(r *engine.Run) (domain.SurvivalResult, error) { return r.CheckSurvival() },
		func(res domain.SurvivalResult) string { return string(res.Outcome) })
}

// Commission resolves the commission roll of the current term.
func (s *Service) Commission(ctx context.Context, charID string) (Outcome[engine.AdvancementOutcome], error) {
	return operate(ctx, s, charID, "commission",
		func(r *engine.Run) (engine.AdvancementOutcome, error) { return r.CheckCommission() },
		advancementOutcome)
}

// Promote resolves the promotion roll of the current term.
func (s *Service) Promote(ctx context.Context, charID string) (Outcome[engine.AdvancementOutcome], error) {
	return operate(ctx, s, charID, "promote",
		func(r *engine.Run) (engine.AdvancementOutcome, error) { return r.CheckPromotion() },
		advancementOutcome)
}

// RollSkills makes the regular skill rolls of the current term.
func (s *Service) RollSkills(ctx context.Context, charID string) (Outcome[[]domain.SkillGrant], error) {
	return operate(ctx, s, charID, "skills",
		func(r *engine.Run) ([]domain.SkillGrant, error) { return r.RollSkills() },
		func(grants []domain.SkillGrant) string { return fmt.Sprintf("%d rolls", len(grants)) })
}

// Age completes the current term.
func (s *Service) Age(ctx context.Context, charID string) (Outcome[domain.TermSummary], error) {
	return operate(ctx, s, charID, "age",
		func(r *engine.Run) (domain.TermSummary, error) { return r.ApplyAging() },
		func(summary domain.TermSummary) string { return fmt.Sprintf("age %d", summary.Age) })
}

// Reenlist rolls to serve another term, or asks to retire when stay is
// false.
func (s *Service) Reenlist(ctx context.Context, charID string, stay bool) (Outcome[domain.ReenlistmentResult], error) {
	return operate(ctx, s, charID, "reenlist",
		func(r *engine.Run) (domain.ReenlistmentResult, error) { return r.AttemptReenlistment(stay) },
		func(res domain.ReenlistmentResult) string { return string(res.Outcome) })
}

// MusterOut reports the benefit rolls of a finished career.
func (s *Service) MusterOut(ctx context.Context, charID string) (Outcome[int], error) {
	return operate(ctx, s, charID, "muster",
		func(r *engine.Run) (int, error) { return r.MusterOut() },
		func(rolls int) string { return fmt.Sprintf("%d rolls", rolls) })
}

// Step resolves whichever phase the current term waits on.
func (s *Service) Step(ctx context.Context, charID string) (Outcome[engine.StepResult], error) {
	return operate(ctx, s, charID, "step",
		func(r *engine.Run) (engine.StepResult, error) { return r.Step() },
		stepOutcome)
}

// RunCareer enlists a new character in the named service, if needed, and
// plays terms until the career ends. A cancelled run saves nothing.
func (s *Service) RunCareer(ctx context.Context, charID, careerName string, opts engine.RunOptions) (Outcome[[]engine.StepResult], error) {
	career, err := domain.ParseCareer(careerName)
	if err != nil {
		return Outcome[[]engine.StepResult]{}, err
	}
	return operate(ctx, s, charID, "run",
		func(r *engine.Run) ([]engine.StepResult, error) { return r.RunCareer(ctx, career, opts) },
		func(steps []engine.StepResult) string { return fmt.Sprintf("%d steps", len(steps)) })
}

func operate[T any](ctx context.Context, s *Service, charID, name string, apply func(*engine.Run) (T, error), describe func(T) string) (Outcome[T], error) {
	ctx, span := s.tracer.Start(ctx, "career."+name)
	defer span.End()

	record, err := s.load(ctx, charID)
	if err != nil {
		return Outcome[T]{}, failSpan(span, err)
	}
	span.SetAttributes(attribute.String("character.id", record.ID))

	src := dice.Resume(record.Dice)
	run, err := engine.Resume(src, record.Character)
	if err != nil {
		return Outcome[T]{}, failSpan(span, err)
	}
	term := termOf(record.Character)
	result, err := apply(run)
	if err != nil {
		s.log.Warn("operation rejected", "op", name, "id", record.ID, "error", err)
		return Outcome[T]{}, failSpan(span, err)
	}

	next := snapshot.New(record.ID, run.Character(), src.State())
	if err := s.save(ctx, next); err != nil {
		return Outcome[T]{}, failSpan(span, err)
	}
	if term == 0 {
		term = termOf(next.Character)
	}
	outcome := describe(result)
	op := s.emit(ctx, next, name, term, outcome, result)

	span.SetAttributes(
		attribute.String("career.outcome", outcome),
		attribute.String("character.status", string(next.Character.Status)),
		attribute.Int("career.term", term),
	)
	s.log.Info("operation applied",
		"op", name,
		"id", record.ID,
		"term", term,
		"outcome", outcome,
		"status", next.Character.Status,
		"draws", next.Dice.Draws,
	)
	return Outcome[T]{Record: next, Result: result, Operation: op}, nil
}

func (s *Service) resolveID(ctx context.Context, charID string) (string, error) {
	charID = strings.TrimSpace(charID)
	if charID != "" {
		return charID, nil
	}
	return s.store.LatestCharacterID(ctx)
}

func (s *Service) load(ctx context.Context, charID string) (snapshot.Record, error) {
	resolved, err := s.resolveID(ctx, charID)
	if err != nil {
		return snapshot.Record{}, err
	}
	stored, err := s.store.GetCharacter(ctx, resolved)
	if err != nil {
		return snapshot.Record{}, err
	}
	return snapshot.Decode(stored.Snapshot, snapshot.JSON)
}

func (s *Service) save(ctx context.Context, record snapshot.Record) error {
	data, err := snapshot.Encode(record, snapshot.JSON)
	if err != nil {
		return err
	}
	return s.store.PutCharacter(ctx, storage.CharacterRecord{
		ID:        record.ID,
		Name:      record.Character.Name,
		Career:    string(record.Character.Career),
		Status:    string(record.Character.Status),
		Snapshot:  data,
		UpdatedAt: s.clock().UTC(),
	})
}

// emit appends the audit row for an applied operation. The snapshot is
// already saved, so a failure here is logged and not returned.
func (s *Service) emit(ctx context.Context, record snapshot.Record, name string, term int, outcome string, result any) storage.Operation {
	op := storage.Operation{
		CharacterID: record.ID,
		Name:        name,
		Term:        term,
		Outcome:     outcome,
		Severity:    string(severityOf(record.Character.Status)),
		Draws:       record.Dice.Draws,
		Timestamp:   s.clock().UTC(),
	}
	if result != nil {
		detail, err := json.Marshal(result)
		if err != nil {
			s.log.Error("encode operation detail", "op", name, "id", record.ID, "error", err)
		} else {
			op.Detail = detail
		}
	}
	appended, err := s.audit.Emit(ctx, op)
	if err != nil {
		s.log.Error("append operation", "op", name, "id", record.ID, "error", err)
		return op
	}
	return appended
}

func severityOf(status domain.Status) audit.Severity {
	switch status {
	case domain.StatusDead, domain.StatusInjured:
		return audit.SeverityWarn
	default:
		return audit.SeverityInfo
	}
}

func termOf(ch domain.Character) int {
	if ch.Term != nil {
		return ch.Term.Number
	}
	return int(ch.TermsServed)
}

func advancementOutcome(out engine.AdvancementOutcome) string {
	switch {
	case out.Commission != nil:
		return successText(out.Commission.Success)
	case out.Promotion != nil:
		return successText(out.Promotion.Success)
	default:
		return ""
	}
}

func successText(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

func stepOutcome(res engine.StepResult) string {
	var detail string
	switch {
	case res.Survival != nil:
		detail = string(res.Survival.Outcome)
	case res.Advancement != nil:
		detail = advancementOutcome(*res.Advancement)
	case res.Summary != nil:
		detail = fmt.Sprintf("age %d", res.Summary.Age)
	case res.Reenlistment != nil:
		detail = string(res.Reenlistment.Outcome)
	default:
		detail = fmt.Sprintf("%d rolls", len(res.SkillRolls))
	}
	return fmt.Sprintf("%s: %s", res.Phase, detail)
}

func failSpan(span trace.Span, err error) error {
	if err == nil || errors.Is(err, context.Canceled) {
		return err
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
