package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-roster/internal/models"
)

const studentColumns = "id, student_no, name, gender, age, major, class_name, phone, email, enrollment_date, status, created_at, updated_at"

var allowedSorts = map[models.SortField]string{
	models.SortByID:             "id",
	models.SortByStudentNo:      "student_no",
	models.SortByName:           "name",
	models.SortByAge:            "age",
	models.SortByMajor:          "major",
	models.SortByClassName:      "class_name",
	models.SortByEnrollmentDate: "enrollment_date",
}

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns one page of students matching the filter and the total match count.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error) {
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.StudentNo != "" {
		conditions = append(conditions, fmt.Sprintf("student_no = $%d", len(args)+1))
		args = append(args, filter.StudentNo)
	}
	if filter.Name != "" {
		conditions = append(conditions, fmt.Sprintf("name LIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Name+"%")
	}
	if filter.Gender != nil {
		conditions = append(conditions, fmt.Sprintf("gender = $%d", len(args)+1))
		args = append(args, int(*filter.Gender))
	}
	if filter.Major != "" {
		conditions = append(conditions, fmt.Sprintf("major LIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Major+"%")
	}
	if filter.ClassName != "" {
		conditions = append(conditions, fmt.Sprintf("class_name LIKE $%d", len(args)+1))
		args = append(args, "%"+filter.ClassName+"%")
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, int(*filter.Status))
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	column, ok := allowedSorts[filter.SortBy]
	if !ok {
		column = "id"
	}
	order := filter.SortOrder
	if order != models.SortAsc && order != models.SortDesc {
		order = models.SortDesc
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 10
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s FROM students %s ORDER BY %s %s LIMIT %d OFFSET %d", studentColumns, where, column, order, size, offset)

	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM students "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// FindByID fetches a student by ID. It returns sql.ErrNoRows when absent.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	var student models.Student
	if err := r.db.GetContext(ctx, &student, "SELECT "+studentColumns+" FROM students WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &student, nil
}

// ExistsByStudentNo checks if a student number is taken, optionally ignoring one record.
func (r *StudentRepository) ExistsByStudentNo(ctx context.Context, studentNo string, excludeID string) (bool, error) {
	query := "SELECT 1 FROM students WHERE student_no = $1"
	args := []interface{}{studentNo}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check student number: %w", err)
	}
	return true, nil
}

// Create inserts a new student record, assigning an ID when missing.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
	const query = `INSERT INTO students (id, student_no, name, gender, age, major, class_name, phone, email, enrollment_date, status, created_at, updated_at)
        VALUES (:id, :student_no, :name, :gender, :age, :major, :class_name, :phone, :email, :enrollment_date, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update modifies an existing student. It returns sql.ErrNoRows when nothing matched.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE students SET student_no = :student_no, name = :name, gender = :gender, age = :age, major = :major, class_name = :class_name, phone = :phone, email = :email, enrollment_date = :enrollment_date, status = :status, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, student)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return requireAffected(res)
}

// Delete removes one student. It returns sql.ErrNoRows when nothing matched.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM students WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return requireAffected(res)
}

// DeleteBatch removes every listed student and returns the number of deleted rows.
func (r *StudentRepository) DeleteBatch(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In("DELETE FROM students WHERE id IN (?)", ids)
	if err != nil {
		return 0, fmt.Errorf("build batch delete: %w", err)
	}
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("batch delete students: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("batch delete students: %w", err)
	}
	return affected, nil
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
