package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-roster/internal/models"
	"github.com/noah-isme/sma-roster/pkg/cache"
	appErrors "github.com/noah-isme/sma-roster/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	ExistsByStudentNo(ctx context.Context, studentNo string, excludeID string) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) error
	DeleteBatch(ctx context.Context, ids []string) (int64, error)
}

// StudentRequest is the payload of the add and update actions.
type StudentRequest struct {
	StudentNo      string `json:"studentNo" validate:"required,max=20"`
	Name           string `json:"name" validate:"required,max=50"`
	Gender         int    `json:"gender" validate:"required,oneof=1 2"`
	Age            *int   `json:"age" validate:"omitempty,min=1,max=150"`
	Major          string `json:"major" validate:"max=100"`
	ClassName      string `json:"className" validate:"max=50"`
	Phone          string `json:"phone" validate:"max=20"`
	Email          string `json:"email" validate:"omitempty,email,max=100"`
	EnrollmentDate string `json:"enrollmentDate" validate:"omitempty,datetime=2006-01-02"`
	Status         int    `json:"status" validate:"oneof=1 2 3"`
}

// StudentServiceConfig tunes paging and caching.
type StudentServiceConfig struct {
	DefaultPageSize int
	MaxPageSize     int
	CacheTTL        time.Duration
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       StudentServiceConfig
}

// NewStudentService constructs the student service. cache and metrics may be nil.
func NewStudentService(repo studentRepository, cacheSvc *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg StudentServiceConfig) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	validate.RegisterTagNameFunc(jsonFieldName)
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 10
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 100
	}
	return &StudentService{repo: repo, cache: cacheSvc, metrics: metrics, validator: validate, logger: logger, cfg: cfg}
}

// Query returns one page of students. Out of range paging falls back to defaults.
func (s *StudentService) Query(ctx context.Context, filter models.StudentFilter) (*models.PageResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = s.cfg.DefaultPageSize
	}
	if filter.PageSize > s.cfg.MaxPageSize {
		filter.PageSize = s.cfg.MaxPageSize
	}
	if _, ok := models.ParseSortField(string(filter.SortBy)); !ok {
		filter.SortBy = models.SortByID
	}
	if filter.SortOrder != models.SortAsc {
		filter.SortOrder = models.SortDesc
	}

	key := pageCacheKey(filter)
	var cached models.PageResult
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	start := time.Now()
	students, total, err := s.repo.List(ctx, filter)
	s.metrics.ObserveDBQuery("list_students", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to query students")
	}
	for i := range students {
		students[i].Decorate()
	}
	page := models.NewPageResult(filter.Page, filter.PageSize, total, students)
	_ = s.cache.Set(ctx, key, page, s.cfg.CacheTTL)
	return page, nil
}

// Get returns one student, served from cache when possible.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrBadRequest, "student id required")
	}

	key := studentCacheKey(id)
	var cached models.Student
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	start := time.Now()
	student, err := s.repo.FindByID(ctx, id)
	s.metrics.ObserveDBQuery("find_student", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	student.Decorate()
	_ = s.cache.Set(ctx, key, student, s.cfg.CacheTTL)
	return student, nil
}

// Create registers a new student.
func (s *StudentService) Create(ctx context.Context, req StudentRequest) (*models.Student, error) {
	student, err := s.build(req)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, student.StudentNo, ""); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to add student")
	}
	s.invalidatePages(ctx)
	student.Decorate()
	s.logger.Info("student added", zap.String("id", student.ID), zap.String("student_no", student.StudentNo))
	return student, nil
}

// Update modifies an existing student record.
func (s *StudentService) Update(ctx context.Context, id string, req StudentRequest) (*models.Student, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrBadRequest, "student id required")
	}
	student, err := s.build(req)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if err := s.ensureUnique(ctx, student.StudentNo, id); err != nil {
		return nil, err
	}
	student.ID = id
	student.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, student); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	_ = s.cache.Delete(ctx, studentCacheKey(id))
	s.invalidatePages(ctx)
	student.Decorate()
	return student, nil
}

// Delete removes one student.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return appErrors.Clone(appErrors.ErrBadRequest, "student id required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	_ = s.cache.Delete(ctx, studentCacheKey(id))
	s.invalidatePages(ctx)
	return nil
}

// DeleteBatch removes every listed student and returns how many were deleted.
func (s *StudentService) DeleteBatch(ctx context.Context, ids []string) (int64, error) {
	cleaned := make([]string, 0, len(ids))
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			cleaned = append(cleaned, id)
			keys = append(keys, studentCacheKey(id))
		}
	}
	if len(cleaned) == 0 {
		return 0, appErrors.Clone(appErrors.ErrBadRequest, "select at least one student to delete")
	}
	deleted, err := s.repo.DeleteBatch(ctx, cleaned)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "batch delete failed")
	}
	if deleted == 0 {
		return 0, appErrors.Clone(appErrors.ErrInternal, "batch delete failed")
	}
	_ = s.cache.Delete(ctx, keys...)
	s.invalidatePages(ctx)
	s.logger.Info("students deleted", zap.Int64("count", deleted))
	return deleted, nil
}

func (s *StudentService) build(req StudentRequest) (*models.Student, error) {
	req.StudentNo = strings.TrimSpace(req.StudentNo)
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.EnrollmentDate = strings.TrimSpace(req.EnrollmentDate)
	if req.Status == 0 {
		req.Status = int(models.StatusEnrolled)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}
	student := &models.Student{
		StudentNo: req.StudentNo,
		Name:      req.Name,
		Gender:    models.Gender(req.Gender),
		Age:       req.Age,
		Major:     strings.TrimSpace(req.Major),
		ClassName: strings.TrimSpace(req.ClassName),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     req.Email,
		Status:    models.Status(req.Status),
	}
	if req.EnrollmentDate != "" {
		date, err := models.ParseDate(req.EnrollmentDate)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "enrollmentDate must be YYYY-MM-DD")
		}
		student.EnrollmentDate = &date
	}
	return student, nil
}

func (s *StudentService) ensureUnique(ctx context.Context, studentNo, excludeID string) error {
	exists, err := s.repo.ExistsByStudentNo(ctx, studentNo, excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate student number")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "student number already exists")
	}
	return nil
}

func (s *StudentService) invalidatePages(ctx context.Context) {
	_ = s.cache.Invalidate(ctx, cache.Key("students", "*"))
}

func studentCacheKey(id string) string {
	return cache.Key("student", id)
}

func pageCacheKey(f models.StudentFilter) string {
	gender, status := "", ""
	if f.Gender != nil {
		gender = strconv.Itoa(int(*f.Gender))
	}
	if f.Status != nil {
		status = strconv.Itoa(int(*f.Status))
	}
	return cache.Key("students",
		strconv.Itoa(f.Page), strconv.Itoa(f.PageSize), string(f.SortBy), string(f.SortOrder),
		f.StudentNo, f.Name, f.Major, f.ClassName, gender, status)
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}

// validationMessage reports the first failing rule in a form suitable for end users.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid student payload"
	}
	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " required"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be between 1 and %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, fe.Param())
	case "email":
		return field + " must be a valid email address"
	case "datetime":
		return field + " must be YYYY-MM-DD"
	}
	return fmt.Sprintf("%s is invalid", field)
}
