package assessments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/bodycomp/internal/bodycomp"
	"github.com/2beens/bodycomp/internal/middleware"
	"github.com/2beens/bodycomp/internal/telemetry/metrics"
	"github.com/2beens/bodycomp/internal/telemetry/tracing"
	"github.com/2beens/bodycomp/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=assessments_test

type assessmentsService interface {
	Create(ctx context.Context, na NewAssessment) (*Assessment, error)
	Correct(ctx context.Context, id int, na NewAssessment) (*Assessment, error)
	Preview(in bodycomp.MeasurementInput) PreviewResponse
	Get(ctx context.Context, id int) (*Assessment, error)
	List(ctx context.Context, params ListParams) ([]Assessment, error)
	Delete(ctx context.Context, id int) error
	Progress(ctx context.Context, subjectID uuid.UUID) (*ProgressReport, error)
}

type ListResponse struct {
	Assessments []Assessment `json:"assessments"`
}

type DeleteResponse struct {
	DeletedID int `json:"deletedId"`
}

type Handler struct {
	service assessmentsService
}

func NewHandler(service assessmentsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(
	r *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	createAllowedPerMin int,
) {
	createHandler := middleware.RateLimit(
		rateLimiter, "assessments-create", createAllowedPerMin, metricsManager,
	)(http.HandlerFunc(h.HandleCreate))

	r.Handle("/assessments", createHandler).Methods("POST", "OPTIONS").Name("new-assessment")
	r.HandleFunc("/assessments/preview", h.HandlePreview).Methods("POST", "OPTIONS").Name("preview-assessment")
	r.HandleFunc("/assessments/{id:[0-9]+}", h.HandleGet).Methods("GET", "OPTIONS").Name("get-assessment")
	r.HandleFunc("/assessments/{id:[0-9]+}", h.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-assessment")
	r.HandleFunc("/assessments/{id:[0-9]+}/correction", h.HandleCorrect).Methods("POST", "OPTIONS").Name("correct-assessment")
	r.HandleFunc("/subjects/{subject}/assessments", h.HandleList).Methods("GET", "OPTIONS").Name("list-assessments")
	r.HandleFunc("/subjects/{subject}/progress", h.HandleProgress).Methods("GET", "OPTIONS").Name("subject-progress")
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.assessments.new")
	defer span.End()

	na, ok := decodeNewAssessment(w, r)
	if !ok {
		return
	}

	added, err := h.service.Create(ctx, na)
	if err != nil {
		writeServiceError(w, err, "add assessment failed")
		return
	}

	log.Debugf("new assessment added: %d, subject %s", added.ID, added.SubjectID)
	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (h *Handler) HandleCorrect(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.assessments.correct")
	defer span.End()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	na, ok := decodeNewAssessment(w, r)
	if !ok {
		return
	}

	added, err := h.service.Correct(ctx, id, na)
	if err != nil {
		writeServiceError(w, err, "correct assessment failed")
		return
	}

	log.Debugf("assessment %d corrected by %d", id, added.ID)
	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.assessments.preview")
	defer span.End()

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var in bodycomp.MeasurementInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.Tracef("preview, unmarshal json params: %s", err)
		writeDecodeError(w, err, "invalid measurement input")
		return
	}

	pkg.WriteJSON(w, h.service.Preview(in), http.StatusOK)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.assessments.get")
	defer span.End()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	a, err := h.service.Get(ctx, id)
	if err != nil {
		writeServiceError(w, err, "get assessment failed")
		return
	}

	pkg.WriteJSON(w, a, http.StatusOK)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.assessments.delete")
	defer span.End()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		writeServiceError(w, err, "delete assessment failed")
		return
	}

	pkg.WriteJSON(w, DeleteResponse{DeletedID: id}, http.StatusOK)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.assessments.list")
	defer span.End()

	subjectID, ok := pathSubject(w, r)
	if !ok {
		return
	}

	from, err := parseTimeParam(r, "from")
	if err != nil {
		http.Error(w, "error, invalid from, RFC3339 expected", http.StatusBadRequest)
		return
	}
	to, err := parseTimeParam(r, "to")
	if err != nil {
		http.Error(w, "error, invalid to, RFC3339 expected", http.StatusBadRequest)
		return
	}

	list, err := h.service.List(ctx, ListParams{
		SubjectID: subjectID,
		From:      from,
		To:        to,
	})
	if err != nil {
		writeServiceError(w, err, "list assessments failed")
		return
	}

	pkg.WriteJSON(w, ListResponse{Assessments: list}, http.StatusOK)
}

func (h *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.assessments.progress")
	defer span.End()

	subjectID, ok := pathSubject(w, r)
	if !ok {
		return
	}

	report, err := h.service.Progress(ctx, subjectID)
	if err != nil {
		writeServiceError(w, err, "get progress failed")
		return
	}

	pkg.WriteJSON(w, report, http.StatusOK)
}

func decodeNewAssessment(w http.ResponseWriter, r *http.Request) (NewAssessment, bool) {
	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return NewAssessment{}, false
	}

	var na NewAssessment
	if err := json.NewDecoder(r.Body).Decode(&na); err != nil {
		log.Tracef("new assessment, unmarshal json params: %s", err)
		writeDecodeError(w, err, "invalid assessment")
		return NewAssessment{}, false
	}
	return na, true
}

func writeDecodeError(w http.ResponseWriter, err error, message string) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		return
	}
	http.Error(w, message, http.StatusBadRequest)
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := mux.Vars(r)["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return 0, false
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func pathSubject(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	subjectID, err := uuid.Parse(mux.Vars(r)["subject"])
	if err != nil || subjectID == uuid.Nil {
		http.Error(w, "error, invalid subject id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return subjectID, true
}

func parseTimeParam(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func writeServiceError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, ErrAssessmentNotFound):
		http.Error(w, "assessment not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidSubject), errors.Is(err, ErrSubjectMismatch):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrAlreadySuperseded):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Errorf("%s: %s", message, err)
		http.Error(w, "error, "+message, http.StatusInternalServerError)
	}
}
