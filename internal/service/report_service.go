package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fieldreport/internal/model"
	"fieldreport/internal/repository"
	"fieldreport/internal/workflow"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// --- DTOs ---

type CreateReportDTO struct {
	ReportType     string           `json:"report_type" binding:"required,oneof=KC AREA KP"`
	Data           model.ReportData `json:"data"`
	AssignedToID   string           `json:"assigned_to_id"` // empty => save as draft
	AssignedToName string           `json:"assigned_to_name"`
}

type ReportFilterDTO struct {
	Search        string
	Branch        string
	ReportType    string
	Status        string
	AreaCode      string
	Date          string
	RevisionsOnly bool
}

type ReportResponse struct {
	ID              string                `json:"id"`
	AoID            string                `json:"ao_id"`
	AoName          string                `json:"ao_name"`
	Branch          string                `json:"branch"`
	AreaCode        string                `json:"area_code"`
	ReportType      string                `json:"report_type"`
	Status          string                `json:"status"`
	CurrentStage    string                `json:"current_stage"`
	AssignedToID    *string               `json:"assigned_to_id"`
	AssignedToName  string                `json:"assigned_to_name"`
	CorrectionNotes string                `json:"correction_notes"`
	ViewedByAK      bool                  `json:"viewed_by_ak"`
	IsRevision      bool                  `json:"is_revision"`
	Data            model.ReportData      `json:"data"`
	Capabilities    workflow.Capabilities `json:"capabilities"`
	CreatedAt       string                `json:"created_at"`
	UpdatedAt       string                `json:"updated_at"`
}

// --- Interface ---

// ReportService exposes one action per lifecycle transition plus the scoped
// list query. Every mutating call is a single atomic read-apply-write step;
// when persistence fails nothing is committed and the caller retries whole.
type ReportService interface {
	Create(ctx context.Context, actor model.Actor, req CreateReportDTO) (ReportResponse, error)
	SaveProgress(ctx context.Context, actor model.Actor, id string, data model.ReportData) (ReportResponse, error)
	Resubmit(ctx context.Context, actor model.Actor, id string, data model.ReportData) (ReportResponse, error)
	Open(ctx context.Context, actor model.Actor, id string) (ReportResponse, error)
	Approve(ctx context.Context, actor model.Actor, id string) (ReportResponse, error)
	Return(ctx context.Context, actor model.Actor, id string, note string) (ReportResponse, error)
	Forward(ctx context.Context, actor model.Actor, id string) (ReportResponse, error)
	Cancel(ctx context.Context, actor model.Actor, id string) (ReportResponse, error)
	OverrideData(ctx context.Context, actor model.Actor, id string, data model.ReportData) (ReportResponse, error)
	Delete(ctx context.Context, actor model.Actor, id string) error
	List(ctx context.Context, actor model.Actor, filter ReportFilterDTO) ([]ReportResponse, error)
	Get(ctx context.Context, actor model.Actor, id string) (ReportResponse, error)
}

type reportService struct {
	reports repository.ReportRepository
	audits  repository.AuditRepository
	tx      repository.TransactionManager
	drafts  DraftService
	hub     interface{ GetBroadcast() chan []byte } // optional websocket hub
	log     *logrus.Logger
}

// NewReportService wires the lifecycle service. drafts may be nil (no
// autosave slot to clear); hub may be nil (no realtime broadcast).
func NewReportService(
	reports repository.ReportRepository,
	audits repository.AuditRepository,
	tx repository.TransactionManager,
	drafts DraftService,
	hub interface{ GetBroadcast() chan []byte },
	log *logrus.Logger,
) ReportService {
	return &reportService{reports: reports, audits: audits, tx: tx, drafts: drafts, hub: hub, log: log}
}

// --- Implementation ---

func (s *reportService) Create(ctx context.Context, actor model.Actor, req CreateReportDTO) (ReportResponse, error) {
	if actor.Role != model.RoleAO {
		return ReportResponse{}, fmt.Errorf("%w: only an AO may create reports", workflow.ErrForbidden)
	}

	var assignee *model.Assignee
	auditAction := model.ActionCreateReport
	if req.AssignedToID != "" {
		id, err := uuid.Parse(req.AssignedToID)
		if err != nil {
			return ReportResponse{}, fmt.Errorf("%w: invalid assignee id", workflow.ErrValidation)
		}
		// fail fast before any persistence round-trip
		if err := workflow.ValidateSubmission(req.ReportType, req.Data); err != nil {
			return ReportResponse{}, err
		}
		assignee = &model.Assignee{ID: id, Name: req.AssignedToName}
		auditAction = model.ActionSubmitReport
	}

	report := model.NewReport(actor, req.Data, req.ReportType, assignee)

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.reports.Create(txCtx, report); err != nil {
			return fmt.Errorf("failed to create report: %w", err)
		}
		return s.logAction(txCtx, actor, auditAction, report, map[string]interface{}{
			"report_type": report.ReportType,
			"status":      report.Status,
		})
	})
	if err != nil {
		return ReportResponse{}, err
	}

	// the draft slot is superseded the moment its data becomes a report
	s.clearDraftSlot(ctx, actor)
	s.broadcast("report.created", report)

	return toReportResponse(report, actor), nil
}

func (s *reportService) SaveProgress(ctx context.Context, actor model.Actor, id string, data model.ReportData) (ReportResponse, error) {
	resp, err := s.mutate(ctx, actor, id, workflow.ActionSaveDraft, workflow.Params{Data: &data}, model.ActionSaveReportDraft, nil)
	if err != nil {
		return ReportResponse{}, err
	}
	s.clearDraftSlot(ctx, actor)
	return resp, nil
}

func (s *reportService) Resubmit(ctx context.Context, actor model.Actor, id string, data model.ReportData) (ReportResponse, error) {
	resp, err := s.mutate(ctx, actor, id, workflow.ActionSubmit, workflow.Params{Data: &data}, model.ActionSubmitReport, nil)
	if err != nil {
		return ReportResponse{}, err
	}
	s.clearDraftSlot(ctx, actor)
	return resp, nil
}

// Open marks the submission viewed. A repeated open succeeds without writing
// anything, so a double-click never re-toggles the revision flag.
func (s *reportService) Open(ctx context.Context, actor model.Actor, id string) (ReportResponse, error) {
	reportID, err := parseReportID(id)
	if err != nil {
		return ReportResponse{}, err
	}

	var updated *model.Report
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		report, err := s.reports.FindByID(txCtx, reportID)
		if err != nil {
			return err
		}
		alreadyViewed := report.ViewedByAK
		if err := workflow.Apply(report, actor, workflow.ActionOpen, workflow.Params{}); err != nil {
			return err
		}
		updated = report
		if alreadyViewed {
			return nil
		}
		if err := s.reports.Save(txCtx, report); err != nil {
			return fmt.Errorf("failed to persist report: %w", err)
		}
		return s.logAction(txCtx, actor, model.ActionOpenReport, report, nil)
	})
	if err != nil {
		return ReportResponse{}, err
	}

	s.broadcast("report.updated", updated)
	return toReportResponse(updated, actor), nil
}

func (s *reportService) Approve(ctx context.Context, actor model.Actor, id string) (ReportResponse, error) {
	return s.mutate(ctx, actor, id, workflow.ActionApprove, workflow.Params{}, model.ActionApproveReport, nil)
}

func (s *reportService) Return(ctx context.Context, actor model.Actor, id string, note string) (ReportResponse, error) {
	return s.mutate(ctx, actor, id, workflow.ActionReturn, workflow.Params{Note: note}, model.ActionReturnReport,
		map[string]interface{}{"note": note})
}

func (s *reportService) Forward(ctx context.Context, actor model.Actor, id string) (ReportResponse, error) {
	return s.mutate(ctx, actor, id, workflow.ActionForward, workflow.Params{}, model.ActionForwardReport, nil)
}

func (s *reportService) Cancel(ctx context.Context, actor model.Actor, id string) (ReportResponse, error) {
	return s.mutate(ctx, actor, id, workflow.ActionCancel, workflow.Params{}, model.ActionCancelSubmission, nil)
}

func (s *reportService) OverrideData(ctx context.Context, actor model.Actor, id string, data model.ReportData) (ReportResponse, error) {
	// the override gets its own audit action so the escape hatch stays traceable
	return s.mutate(ctx, actor, id, workflow.ActionOverride, workflow.Params{Data: &data}, model.ActionITOverrideEdit, nil)
}

func (s *reportService) Delete(ctx context.Context, actor model.Actor, id string) error {
	reportID, err := parseReportID(id)
	if err != nil {
		return err
	}

	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		report, err := s.reports.FindByID(txCtx, reportID)
		if err != nil {
			return err
		}
		if !workflow.CanDelete(report, actor) {
			return fmt.Errorf("%w: you may not delete this report", workflow.ErrForbidden)
		}
		if err := s.reports.Delete(txCtx, reportID); err != nil {
			return fmt.Errorf("failed to delete report: %w", err)
		}
		return s.logAction(txCtx, actor, model.ActionDeleteReport, report, map[string]interface{}{
			"status": report.Status,
		})
	})
}

func (s *reportService) List(ctx context.Context, actor model.Actor, filter ReportFilterDTO) ([]ReportResponse, error) {
	all, err := s.reports.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reports: %w", err)
	}

	scoped := workflow.VisibleTo(actor, all)
	narrowed := workflow.Filter{
		Search:        filter.Search,
		Branch:        filter.Branch,
		ReportType:    filter.ReportType,
		Status:        filter.Status,
		AreaCode:      filter.AreaCode,
		Date:          filter.Date,
		RevisionsOnly: filter.RevisionsOnly,
	}.Narrow(scoped)
	workflow.SortDefault(narrowed)

	out := make([]ReportResponse, 0, len(narrowed))
	for i := range narrowed {
		out = append(out, toReportResponse(&narrowed[i], actor))
	}
	return out, nil
}

func (s *reportService) Get(ctx context.Context, actor model.Actor, id string) (ReportResponse, error) {
	reportID, err := parseReportID(id)
	if err != nil {
		return ReportResponse{}, err
	}
	report, err := s.reports.FindByID(ctx, reportID)
	if err != nil {
		return ReportResponse{}, err
	}
	if len(workflow.VisibleTo(actor, []model.Report{*report})) == 0 {
		return ReportResponse{}, workflow.ErrNotFound
	}
	return toReportResponse(report, actor), nil
}

// mutate is the shared atomic read-apply-write step behind every transition.
func (s *reportService) mutate(
	ctx context.Context,
	actor model.Actor,
	id string,
	action workflow.Action,
	params workflow.Params,
	auditAction string,
	details map[string]interface{},
) (ReportResponse, error) {
	reportID, err := parseReportID(id)
	if err != nil {
		return ReportResponse{}, err
	}

	var updated *model.Report
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		report, err := s.reports.FindByID(txCtx, reportID)
		if err != nil {
			return err
		}
		if err := workflow.Apply(report, actor, action, params); err != nil {
			return err
		}
		if err := s.reports.Save(txCtx, report); err != nil {
			return fmt.Errorf("failed to persist report: %w", err)
		}
		updated = report
		return s.logAction(txCtx, actor, auditAction, report, details)
	})
	if err != nil {
		return ReportResponse{}, err
	}

	s.broadcast("report.updated", updated)
	s.log.WithFields(logrus.Fields{
		"report": updated.ID,
		"action": auditAction,
		"actor":  actor.ID,
		"status": updated.Status,
		"stage":  updated.CurrentStage,
	}).Info("report transition applied")

	return toReportResponse(updated, actor), nil
}

func (s *reportService) logAction(ctx context.Context, actor model.Actor, action string, report *model.Report, extra map[string]interface{}) error {
	payload := map[string]interface{}{
		"report_type": report.ReportType,
		"stage":       report.CurrentStage,
	}
	for k, v := range extra {
		payload[k] = v
	}
	details, _ := json.Marshal(payload)

	actorID := actor.ID
	entry := model.AuditLog{
		UserID:     &actorID,
		Action:     action,
		EntityID:   report.ID.String(),
		EntityName: report.Data.MemberName,
		Details:    string(details),
	}
	if err := s.audits.Log(ctx, &entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

func (s *reportService) clearDraftSlot(ctx context.Context, actor model.Actor) {
	if s.drafts == nil {
		return
	}
	if err := s.drafts.Clear(ctx, actor.ID); err != nil {
		s.log.WithError(err).WithField("user", actor.ID).Warn("failed to clear draft slot")
	}
}

func (s *reportService) broadcast(event string, report *model.Report) {
	if s.hub == nil || report == nil {
		return
	}
	msg, err := json.Marshal(map[string]interface{}{
		"event":     event,
		"report_id": report.ID.String(),
		"status":    report.Status,
		"stage":     report.CurrentStage,
		"area_code": report.AreaCode,
		"at":        time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	select {
	case s.hub.GetBroadcast() <- msg:
	default:
		// never block a mutation on a slow websocket consumer
	}
}

// --- Helpers ---

func parseReportID(id string) (uuid.UUID, error) {
	reportID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid report id", workflow.ErrValidation)
	}
	return reportID, nil
}

func toReportResponse(r *model.Report, actor model.Actor) ReportResponse {
	resp := ReportResponse{
		ID:              r.ID.String(),
		AoID:            r.AoID.String(),
		AoName:          r.AoName,
		Branch:          r.Branch,
		AreaCode:        r.AreaCode,
		ReportType:      r.ReportType,
		Status:          r.Status,
		CurrentStage:    r.CurrentStage,
		AssignedToName:  r.AssignedToName,
		CorrectionNotes: r.CorrectionNotes,
		ViewedByAK:      r.ViewedByAK,
		IsRevision:      r.IsRevision,
		Data:            r.Data,
		Capabilities:    workflow.CapabilitiesFor(r, actor),
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       r.UpdatedAt.Format(time.RFC3339),
	}
	if r.AssignedToID != nil {
		id := r.AssignedToID.String()
		resp.AssignedToID = &id
	}
	return resp
}
