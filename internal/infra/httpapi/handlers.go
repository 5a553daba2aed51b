package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"shift_reminder_bot/internal/app"
	"shift_reminder_bot/internal/domain/reminder"
	"shift_reminder_bot/internal/infra/grouplog"
	"shift_reminder_bot/internal/infra/line"
	"shift_reminder_bot/internal/infra/metrics"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

const (
	serviceName       = "shift-reminder-bot"
	readHeaderTimeout = 10 * time.Second
	maxBodyBytes      = 1 << 20
)

// Reminders is the reminder engine as seen by the HTTP layer.
type Reminders interface {
	TenantID() int64
	CheckAndSend(ctx context.Context, tenantID int64, year, month int) (*reminder.Result, error)
	SendPhase(ctx context.Context, tenantID int64, year, month, phase int) (*reminder.Result, error)
	SendPersonalReminders(ctx context.Context, tenantID int64, year, month, phase int) (*app.PersonalResult, error)
	Status(ctx context.Context, tenantID int64, year, month int) (*app.StatusReport, error)
}

// AutoRunner runs the automatic reminder under the scheduler's supervision.
type AutoRunner interface {
	RunNow(ctx context.Context) (*reminder.Result, error)
}

type Approvals interface {
	NotifyFirstPlanApproved(ctx context.Context, tenantID int64, year, month int) (*app.ApprovalResult, error)
	NotifySecondPlanApproved(ctx context.Context, tenantID int64, year, month int) (*app.ApprovalResult, error)
	SendTestMessage(ctx context.Context, tenantID int64, text string) (string, bool, error)
}

type WebhookParser interface {
	ParseGroupEvents(r *http.Request) ([]line.GroupEvent, error)
}

type GroupLog interface {
	Record(ctx context.Context, e grouplog.Entry) error
}

type Handler struct {
	reminders Reminders
	auto      AutoRunner
	approvals Approvals
	webhook   WebhookParser // nil when the LINE webhook is not configured
	groupLog  GroupLog      // nil disables recording
	now       func() time.Time
	logger    *logrus.Entry
}

func NewHandler(
	reminders Reminders,
	auto AutoRunner,
	approvals Approvals,
	webhook WebhookParser,
	groupLog GroupLog,
	logger *logrus.Entry,
) *Handler {
	return &Handler{
		reminders: reminders,
		auto:      auto,
		approvals: approvals,
		webhook:   webhook,
		groupLog:  groupLog,
		now:       time.Now,
		logger:    logger,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   serviceName,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}

// SendReminder runs the automatic decision for the given month.
func (h *Handler) SendReminder(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeReminderRequest(w, r, false)
	if !ok {
		return
	}

	result, err := h.reminders.CheckAndSend(h.ctx(r), h.tenant(req), req.Year, req.Month)
	if err != nil {
		h.writeInternalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newReminderResponse(result))
}

// SendReminderPhase sends a specific phase regardless of the date.
func (h *Handler) SendReminderPhase(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeReminderRequest(w, r, true)
	if !ok {
		return
	}

	result, err := h.reminders.SendPhase(h.ctx(r), h.tenant(req), req.Year, req.Month, req.Phase)
	if err != nil {
		if errors.Is(err, reminder.ErrInvalidPhase) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.writeInternalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newReminderResponse(result))
}

func (h *Handler) SendReminderAuto(w http.ResponseWriter, r *http.Request) {
	result, err := h.auto.RunNow(h.ctx(r))
	if err != nil {
		h.writeInternalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newReminderResponse(result))
}

// SendReminderPersonal pushes a phase message to each unsubmitted staff member directly.
func (h *Handler) SendReminderPersonal(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeReminderRequest(w, r, true)
	if !ok {
		return
	}

	result, err := h.reminders.SendPersonalReminders(h.ctx(r), h.tenant(req), req.Year, req.Month, req.Phase)
	if err != nil {
		if errors.Is(err, reminder.ErrInvalidPhase) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.writeInternalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PersonalResponse{Success: true, PersonalResult: result})
}

// ReminderStatus reports stats and the phase decision without sending. Query: year, month, tenant_id.
func (h *Handler) ReminderStatus(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := ReminderRequest{}
	req.Year, _ = strconv.Atoi(q.Get("year"))
	req.Month, _ = strconv.Atoi(q.Get("month"))
	if raw := q.Get("tenant_id"); raw != "" {
		tenantID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid tenant_id")
			return
		}
		req.TenantID = &tenantID
	}
	if err := req.validate(false); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.reminders.Status(h.ctx(r), h.tenant(req), req.Year, req.Month)
	if err != nil {
		h.writeInternalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Success: true, StatusReport: report})
}

func (h *Handler) FirstPlanApproved(w http.ResponseWriter, r *http.Request) {
	h.approval(w, r, h.approvals.NotifyFirstPlanApproved)
}

func (h *Handler) SecondPlanApproved(w http.ResponseWriter, r *http.Request) {
	h.approval(w, r, h.approvals.NotifySecondPlanApproved)
}

func (h *Handler) approval(
	w http.ResponseWriter,
	r *http.Request,
	notify func(ctx context.Context, tenantID int64, year, month int) (*app.ApprovalResult, error),
) {
	var req ApprovalRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.requestLogger(r).WithFields(logrus.Fields{
		"tenant_id": req.TenantID,
		"store_id":  req.StoreID,
		"plan_id":   req.PlanID,
		"year":      req.Year,
		"month":     req.Month,
	}).Info("Plan approval notification requested")

	result, err := notify(h.ctx(r), req.TenantID, req.Year, req.Month)
	if err != nil {
		h.writeInternalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) TestNotification(w http.ResponseWriter, r *http.Request) {
	var req TestMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	groupID, sent, err := h.approvals.SendTestMessage(h.ctx(r), req.TenantID, req.Message)
	if err != nil {
		if errors.Is(err, app.ErrNoGroupConfigured) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.writeInternalError(w, r, err)
		return
	}

	message := "Test message sent"
	if !sent {
		message = "Test message could not be delivered"
	}
	writeJSON(w, http.StatusOK, TestMessageResponse{Success: true, Message: message, GroupID: groupID})
}

// LineWebhook records join and leave events. It always answers 200 so LINE does not redeliver.
func (h *Handler) LineWebhook(w http.ResponseWriter, r *http.Request) {
	logCtx := h.requestLogger(r)
	defer func() {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}()

	if h.webhook == nil {
		logCtx.Warn("LINE webhook called but no channel secret is configured")
		return
	}

	events, err := h.webhook.ParseGroupEvents(r)
	if err != nil {
		logCtx.WithError(err).Warn("Rejected LINE webhook request")
		return
	}

	for _, e := range events {
		eventLog := logCtx.WithFields(logrus.Fields{
			"event":    e.Kind,
			"group_id": e.GroupID,
			"is_room":  e.IsRoom,
		})
		eventLog.Info("Bot group membership changed")

		if h.groupLog == nil {
			continue
		}
		entry := grouplog.Entry{GroupID: e.GroupID, Kind: string(e.Kind), IsRoom: e.IsRoom, RecordedAt: h.now()}
		if err := h.groupLog.Record(r.Context(), entry); err != nil {
			eventLog.WithError(err).Warn("Could not record group event")
		}
	}
}

func (h *Handler) LineWebhookCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Webhook endpoint is active"))
}

func (h *Handler) decodeReminderRequest(w http.ResponseWriter, r *http.Request, requirePhase bool) (ReminderRequest, bool) {
	var req ReminderRequest
	if !decodeJSON(w, r, &req) {
		return req, false
	}
	if err := req.validate(requirePhase); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return req, false
	}
	return req, true
}

func (h *Handler) tenant(req ReminderRequest) int64 {
	if req.TenantID != nil {
		return *req.TenantID
	}
	return h.reminders.TenantID()
}

func (h *Handler) ctx(r *http.Request) context.Context {
	return app.WithTrigger(r.Context(), metrics.TriggerHTTP)
}

func (h *Handler) requestLogger(r *http.Request) *logrus.Entry {
	return h.logger.WithField("request_id", middleware.GetReqID(r.Context()))
}

func (h *Handler) writeInternalError(w http.ResponseWriter, r *http.Request, err error) {
	h.requestLogger(r).WithError(err).WithField("path", r.URL.Path).Error("Request failed")
	writeError(w, http.StatusInternalServerError, err.Error())
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.requestLogger(r).WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start),
		}).Debug("HTTP request handled")
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Success: false, Error: message})
}
