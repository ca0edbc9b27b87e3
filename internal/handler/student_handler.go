package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-roster/internal/middleware"
	"github.com/noah-isme/sma-roster/internal/models"
	"github.com/noah-isme/sma-roster/internal/service"
	appErrors "github.com/noah-isme/sma-roster/pkg/errors"
	"github.com/noah-isme/sma-roster/pkg/response"
)

type studentService interface {
	Query(ctx context.Context, filter models.StudentFilter) (*models.PageResult, error)
	Get(ctx context.Context, id string) (*models.Student, error)
	Create(ctx context.Context, req service.StudentRequest) (*models.Student, error)
	Update(ctx context.Context, id string, req service.StudentRequest) (*models.Student, error)
	Delete(ctx context.Context, id string) error
	DeleteBatch(ctx context.Context, ids []string) (int64, error)
}

// StudentHandler serves the student endpoint. Every operation shares one route and is
// selected by the action parameter.
type StudentHandler struct {
	students studentService
	metrics  *service.MetricsService
	logger   *zap.Logger
}

// NewStudentHandler constructs StudentHandler. metrics may be nil.
func NewStudentHandler(students studentService, metrics *service.MetricsService, logger *zap.Logger) *StudentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentHandler{students: students, metrics: metrics, logger: logger}
}

// Dispatch godoc
// @Summary Student roster endpoint
// @Description Runs the operation named by action: query, getById, add, update, delete or deleteBatch.
// @Description Parameters are read from the form body, then the query string.
// @Tags Students
// @Accept x-www-form-urlencoded
// @Produce json
// @Param action query string true "Operation" Enums(query, getById, add, update, delete, deleteBatch)
// @Param currentPage query int false "Page, 1-based (query)"
// @Param pageSize query int false "Page size (query)"
// @Param orderBy query string false "Sort column (query)" Enums(id, student_no, name, age, major, class_name, enrollment_date)
// @Param orderType query string false "Sort direction (query)" Enums(ASC, DESC)
// @Param studentNo query string false "Student number filter or field"
// @Param name query string false "Name filter or field"
// @Param gender query int false "Gender code, 1 male 2 female"
// @Param major query string false "Major filter or field"
// @Param className query string false "Class filter or field"
// @Param status query int false "Status code, 1 enrolled 2 suspended 3 graduated"
// @Param id query string false "Student ID (getById, update, delete)"
// @Param ids[] formData []string false "Student IDs (deleteBatch)" collectionFormat(multi)
// @Param age formData int false "Age (add, update)"
// @Param phone formData string false "Phone (add, update)"
// @Param email formData string false "Email (add, update)"
// @Param enrollmentDate formData string false "Enrollment date YYYY-MM-DD (add, update)"
// @Success 200 {object} response.Envelope{data=models.PageResult}
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Security BearerAuth
// @Router /student [get]
// @Router /student [post]
func (h *StudentHandler) Dispatch(c *gin.Context) {
	action := middleware.Action(c)
	switch action {
	case "query":
		h.query(c)
	case "getById":
		h.getByID(c)
	case "add":
		h.add(c)
	case "update":
		h.update(c)
	case "delete":
		h.delete(c)
	case "deleteBatch":
		h.deleteBatch(c)
	default:
		h.fail(c, action, appErrors.Clone(appErrors.ErrBadRequest, "unknown action: "+action))
	}
}

func (h *StudentHandler) query(c *gin.Context) {
	filter := models.StudentFilter{
		StudentNo: strings.TrimSpace(param(c, "studentNo")),
		Name:      strings.TrimSpace(param(c, "name")),
		Major:     strings.TrimSpace(param(c, "major")),
		ClassName: strings.TrimSpace(param(c, "className")),
		Page:      intParam(c, "currentPage"),
		PageSize:  intParam(c, "pageSize"),
		SortBy:    models.SortField(param(c, "orderBy")),
	}
	if dir, ok := models.ParseSortDirection(param(c, "orderType")); ok {
		filter.SortOrder = dir
	}
	if g := models.Gender(intParam(c, "gender")); g.Valid() {
		filter.Gender = &g
	}
	if s := models.Status(intParam(c, "status")); s.Valid() {
		filter.Status = &s
	}

	page, err := h.students.Query(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, "query", err)
		return
	}
	h.ok(c, "query", "query succeeded", page)
}

func (h *StudentHandler) getByID(c *gin.Context) {
	student, err := h.students.Get(c.Request.Context(), param(c, "id"))
	if err != nil {
		h.fail(c, "getById", err)
		return
	}
	h.ok(c, "getById", "query succeeded", student)
}

func (h *StudentHandler) add(c *gin.Context) {
	req, err := studentRequest(c)
	if err != nil {
		h.fail(c, "add", err)
		return
	}
	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "add", err)
		return
	}
	h.audit(c, "add", student.ID)
	h.ok(c, "add", "student added", student)
}

func (h *StudentHandler) update(c *gin.Context) {
	req, err := studentRequest(c)
	if err != nil {
		h.fail(c, "update", err)
		return
	}
	student, err := h.students.Update(c.Request.Context(), param(c, "id"), req)
	if err != nil {
		h.fail(c, "update", err)
		return
	}
	h.audit(c, "update", student.ID)
	h.ok(c, "update", "student updated", student)
}

func (h *StudentHandler) delete(c *gin.Context) {
	id := param(c, "id")
	if err := h.students.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, "delete", err)
		return
	}
	h.audit(c, "delete", id)
	h.ok(c, "delete", "student deleted", nil)
}

func (h *StudentHandler) deleteBatch(c *gin.Context) {
	ids := idsParam(c)
	deleted, err := h.students.DeleteBatch(c.Request.Context(), ids)
	if err != nil {
		h.fail(c, "deleteBatch", err)
		return
	}
	h.audit(c, "deleteBatch", strings.Join(ids, ","))
	h.ok(c, "deleteBatch", fmt.Sprintf("deleted %d records", deleted), nil)
}

func (h *StudentHandler) ok(c *gin.Context, action, message string, data interface{}) {
	h.metrics.ObserveAction(action, http.StatusOK)
	response.OK(c, message, data)
}

func (h *StudentHandler) fail(c *gin.Context, action string, err error) {
	appErr := appErrors.FromError(err)
	if appErr.Status >= http.StatusInternalServerError {
		h.logger.Error("student action failed", zap.String("action", action), zap.Error(err))
	}
	if action == "" {
		action = "none"
	}
	h.metrics.ObserveAction(action, appErr.Status)
	response.Error(c, appErr)
}

func (h *StudentHandler) audit(c *gin.Context, action, target string) {
	fields := []zap.Field{zap.String("action", action), zap.String("target", target)}
	if claims := claimsFromContext(c); claims != nil {
		fields = append(fields, zap.String("operator", claims.Operator))
	}
	h.logger.Info("student mutated", fields...)
}

// studentRequest reads the add/update fields. Numeric fields that do not parse are
// reported as validation errors.
func studentRequest(c *gin.Context) (service.StudentRequest, error) {
	req := service.StudentRequest{
		StudentNo:      param(c, "studentNo"),
		Name:           param(c, "name"),
		Major:          param(c, "major"),
		ClassName:      param(c, "className"),
		Phone:          param(c, "phone"),
		Email:          param(c, "email"),
		EnrollmentDate: param(c, "enrollmentDate"),
	}
	var err error
	if req.Gender, err = optionalInt(c, "gender"); err != nil {
		return req, err
	}
	if req.Status, err = optionalInt(c, "status"); err != nil {
		return req, err
	}
	if raw := strings.TrimSpace(param(c, "age")); raw != "" {
		age, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return req, appErrors.Wrap(convErr, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "age must be a number")
		}
		req.Age = &age
	}
	return req, nil
}

func optionalInt(c *gin.Context, key string) (int, error) {
	raw := strings.TrimSpace(param(c, key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, key+" must be a number")
	}
	return n, nil
}

// param prefers the form body over the query string.
func param(c *gin.Context, key string) string {
	if v, ok := c.GetPostForm(key); ok {
		return v
	}
	return c.Query(key)
}

func intParam(c *gin.Context, key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(param(c, key)))
	if err != nil {
		return 0
	}
	return n
}

// idsParam accepts both ids[] and ids, from the body or the query string.
func idsParam(c *gin.Context) []string {
	for _, key := range []string{"ids[]", "ids"} {
		if ids, ok := c.GetPostFormArray(key); ok {
			return ids
		}
		if ids, ok := c.GetQueryArray(key); ok {
			return ids
		}
	}
	return nil
}
